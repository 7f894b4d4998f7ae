// Spokeworks Marketplace - Multi-Vendor Bicycle Marketplace
// Copyright 2026 Spokeworks
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/spokeworks/marketplace

package models

import "time"

// Product is a catalog listing as synced from the point-of-sale system or
// created through a manual listing flow. The recommender treats products as
// read-only input.
type Product struct {
	// ID is the unique product identifier.
	ID string `json:"id"`

	// Name is the display name of the listing.
	Name string `json:"name"`

	// Description is the free-text listing description.
	Description string `json:"description"`

	// Price is the listing price in the marketplace currency.
	Price float64 `json:"price"`

	// Category is the top-level catalog category (Bicycles, Parts, Apparel, ...).
	Category string `json:"category"`

	// Subcategory is the second-level catalog category, if any.
	Subcategory string `json:"subcategory,omitempty"`

	// Brand is the product brand as listed by the seller.
	Brand string `json:"brand,omitempty"`

	// Manufacturer is the manufacturer name from the POS record, which may
	// differ from the seller-entered brand.
	Manufacturer string `json:"manufacturer,omitempty"`

	// BikeType is the riding discipline for complete bikes and frames
	// (Mountain, Road, Gravel, Track, BMX, Commuter). Empty for parts.
	BikeType string `json:"bike_type,omitempty"`

	// SellerID is the owning seller.
	SellerID string `json:"seller_id,omitempty"`

	// ImageURL is the primary listing image.
	ImageURL string `json:"image_url,omitempty"`

	// Active reports whether the listing is currently purchasable.
	Active bool `json:"active"`

	// CreatedAt is when the listing was created.
	CreatedAt time.Time `json:"created_at"`
}

// Summary returns the display-ready projection of the product used in
// recommendation responses.
func (p *Product) Summary() ProductSummary {
	return ProductSummary{
		ID:          p.ID,
		Name:        p.Name,
		Price:       p.Price,
		Category:    p.Category,
		Subcategory: p.Subcategory,
		Brand:       p.Brand,
		BikeType:    p.BikeType,
		ImageURL:    p.ImageURL,
	}
}

// ProductSummary is the hydrated, display-ready projection of a product
// returned by the recommendation API.
type ProductSummary struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	Subcategory string  `json:"subcategory,omitempty"`
	Brand       string  `json:"brand,omitempty"`
	BikeType    string  `json:"bike_type,omitempty"`
	ImageURL    string  `json:"image_url,omitempty"`
}

// ProductScore holds the pre-computed ranking signals for a product,
// maintained by an external aggregation job. Absence of a row means both
// scores are zero.
type ProductScore struct {
	// ProductID is the scored product.
	ProductID string `json:"product_id"`

	// TrendingScore is the short-window interaction velocity. Non-negative.
	TrendingScore float64 `json:"trending_score"`

	// PopularityScore is the all-time interaction weight. Non-negative.
	PopularityScore float64 `json:"popularity_score"`
}
