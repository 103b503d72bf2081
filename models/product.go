package models

import (
	"time"

	"gorm.io/gorm"
)

type Product struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	Price       float64   `gorm:"not null" json:"price"` // Must stay > 0, enforced at the API boundary
	Category    string    `gorm:"type:VARCHAR(64);not null" json:"category"`
	Icon        string    `gorm:"type:VARCHAR(16);not null" json:"icon"`
	ImageURL    string    `gorm:"column:image_url" json:"imageUrl"`
	Description string    `gorm:"not null" json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// defaultCatalog is inserted once when the products table is empty so a
// fresh deployment serves a browsable shop immediately.
var defaultCatalog = []Product{
	{Name: "Premium Shoes", Price: 89.99, Category: "footwear", Icon: "👟", Description: "Comfortable and stylish premium shoes"},
	{Name: "Classic Shirt", Price: 34.99, Category: "clothing", Icon: "👕", Description: "High-quality cotton shirt"},
	{Name: "Denim Jeans", Price: 59.99, Category: "clothing", Icon: "👖", Description: "Classic blue denim jeans"},
	{Name: "Winter Jacket", Price: 129.99, Category: "outerwear", Icon: "🧥", Description: "Warm and waterproof winter jacket"},
	{Name: "Casual Hat", Price: 24.99, Category: "accessories", Icon: "🧢", Description: "Comfortable casual baseball hat"},
	{Name: "Leather Belt", Price: 44.99, Category: "accessories", Icon: "⌚", Description: "Premium leather belt"},
	{Name: "Sports Watch", Price: 199.99, Category: "accessories", Icon: "⌚", Description: "Digital sports watch with timer"},
	{Name: "Sunglasses", Price: 89.99, Category: "accessories", Icon: "😎", Description: "UV-protected sunglasses"},
	{Name: "Wool Sweater", Price: 74.99, Category: "clothing", Icon: "🧶", Description: "Cozy wool sweater"},
	{Name: "Running Shoes", Price: 99.99, Category: "footwear", Icon: "🏃", Description: "High-performance running shoes"},
	{Name: "Gold Necklace", Price: 249.99, Category: "jewelry", Icon: "⛓️", Description: "Elegant 18k gold necklace with pendant"},
	{Name: "Diamond Earrings", Price: 399.99, Category: "jewelry", Icon: "💎", Description: "Premium diamond stud earrings"},
	{Name: "Silver Ring", Price: 149.99, Category: "jewelry", Icon: "💍", Description: "Stunning sterling silver ring"},
	{Name: "Pearl Bracelet", Price: 179.99, Category: "jewelry", Icon: "✨", Description: "Luxurious freshwater pearl bracelet"},
	{Name: "Sapphire Pendant", Price: 299.99, Category: "jewelry", Icon: "🔵", Description: "Beautiful blue sapphire pendant"},
}

// SeedDefaultProducts fills an empty products table with the default catalog.
func SeedDefaultProducts(db *gorm.DB) error {
	var count int64
	if err := db.Model(&Product{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	catalog := make([]Product, len(defaultCatalog))
	copy(catalog, defaultCatalog)
	return db.Create(&catalog).Error
}
