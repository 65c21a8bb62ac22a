package handler

import (
	"bytes"
	"html/template"
	"net/http"

	"github.com/BilawalArif/redfin-clone/internal/domain"
	"github.com/gin-gonic/gin"
)

var profileFormTemplate = template.Must(template.New("profile-form").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>Update User Information</title>
  <style>
    body { font-family: Arial, sans-serif; background-color: #f5f5f5; margin: 0; display: flex; justify-content: center; align-items: center; min-height: 100vh; }
    .form-container { background-color: #ffffff; padding: 20px; border-radius: 8px; box-shadow: 0 0 10px rgba(0, 0, 0, 0.2); width: 300px; text-align: center; }
    .form-input { margin-bottom: 10px; padding: 10px; border: 1px solid #ccc; border-radius: 4px; width: 100%; box-sizing: border-box; font-size: 14px; }
    .form-button { background-color: #007bff; color: #ffffff; border: none; border-radius: 4px; padding: 10px; width: 100%; font-size: 16px; cursor: pointer; }
  </style>
</head>
<body>
  <div class="form-container">
    <h2>Update User Information</h2>
    <form action="/auth/update-user" method="post">
      <input class="form-input" type="text" name="email" placeholder="Email" value="{{.Email}}">
      <input class="form-input" type="text" name="username" placeholder="Username">
      <input class="form-input" type="password" name="password" placeholder="Password">
      <input class="form-input" type="number" name="phoneNumber" placeholder="Phone Number">
      <input class="form-input" type="number" name="age" placeholder="Age">
      <button class="form-button" type="submit">Update</button>
    </form>
  </div>
</body>
</html>
`))

// renderProfileForm writes the profile completion page prefilled with email
func renderProfileForm(c *gin.Context, email string) {
	var buf bytes.Buffer
	if err := profileFormTemplate.Execute(&buf, struct{ Email string }{Email: email}); err != nil {
		_ = c.Error(domain.NewInternalError(err))
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}
