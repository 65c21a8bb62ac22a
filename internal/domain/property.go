package domain

import "time"

// Comment is embedded in its parent property and has no life of its own
type Comment struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Property is a listing with its embedded comments and vote counters
type Property struct {
	ID           string    `json:"id" db:"id"`
	SoldDate     string    `json:"soldDate" db:"sold_date"`
	PropertyType string    `json:"propertyType" db:"property_type"`
	Address      string    `json:"address" db:"address"`
	City         string    `json:"city" db:"city"`
	State        string    `json:"state" db:"state"`
	Zip          int       `json:"zip" db:"zip"`
	Price        float64   `json:"price" db:"price"`
	Beds         int       `json:"beds" db:"beds"`
	Baths        float64   `json:"baths" db:"baths"`
	SquareFeet   int       `json:"squareFeet" db:"square_feet"`
	LotSize      int       `json:"lotSize" db:"lot_size"`
	YearBuilt    int       `json:"yearBuilt" db:"year_built"`
	DaysOnMarket int       `json:"daysOnMarket" db:"days_on_market"`
	MonthlyHOA   float64   `json:"monthlyHoa" db:"monthly_hoa"`
	MLSNumber    int64     `json:"mlsNumber" db:"mls_number"`
	Identifier   string    `json:"identifier" db:"identifier"`
	Latitude     float64   `json:"latitude" db:"latitude"`
	Longitude    float64   `json:"longitude" db:"longitude"`
	Description  string    `json:"description" db:"description"`
	ImageURL     string    `json:"imageUrl" db:"image_url"`
	Comments     []Comment `json:"comments" db:"comments"`
	Upvotes      int       `json:"upvotes" db:"upvotes"`
	Downvotes    int       `json:"downvotes" db:"downvotes"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}

// FindComment returns the index of the comment with the given id, or -1
func (p *Property) FindComment(commentID string) int {
	for i := range p.Comments {
		if p.Comments[i].ID == commentID {
			return i
		}
	}
	return -1
}

// SearchCriteria holds equality filters. Zero values are not applied.
type SearchCriteria struct {
	Zip     int    `form:"zip"`
	City    string `form:"city"`
	Address string `form:"address"`
}

// IsEmpty reports whether no filter is set
func (c SearchCriteria) IsEmpty() bool {
	return c.Zip == 0 && c.City == "" && c.Address == ""
}
