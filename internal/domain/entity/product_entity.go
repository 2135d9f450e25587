package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product is the catalog aggregate. Stock maps a size label to the available
// quantity; its keys are restricted to the declared Sizes. Every size is
// expected to have a stock entry, but the pairing is not enforced atomically:
// an admin update replaces the whole map from submitted entries.
type Product struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description" json:"description"`
	Price       float64            `bson:"price" json:"price"`
	Category    string             `bson:"category" json:"category"`
	Subcategory string             `bson:"subcategory" json:"subcategory"`
	Sizes       []string           `bson:"sizes" json:"sizes"`
	Images      []string           `bson:"image" json:"image"`
	Stock       map[string]int     `bson:"stock" json:"stock"`
	CreatedAt   time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updatedAt"`
}

// HasSize reports whether size is one of the product's declared sizes.
func (p *Product) HasSize(size string) bool {
	for _, s := range p.Sizes {
		if s == size {
			return true
		}
	}
	return false
}

// PrimaryImage returns the first hosted image URL, or "" when none exists.
func (p *Product) PrimaryImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}
