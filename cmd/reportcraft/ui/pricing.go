package ui

import "fmt"

// PricingPackage describes one credit top-up option shown on the upsell
// page. Purchasing is out of band; the page only tells the user who to
// contact.
type PricingPackage struct {
	ID      string
	Name    string
	Credits int
	Price   string
	Popular bool
}

// pricingPackages is the fixed catalog, cheapest first.
var pricingPackages = []PricingPackage{
	{ID: "starter", Name: "Starter", Credits: 5, Price: "50,000 VND"},
	{ID: "standard", Name: "Standard", Credits: 20, Price: "150,000 VND", Popular: true},
	{ID: "premium", Name: "Premium", Credits: 50, Price: "300,000 VND"},
}

// Line renders one catalog row.
func (p PricingPackage) Line() string {
	marker := "  "
	if p.Popular {
		marker = "★ "
	}
	return fmt.Sprintf("%s%-10s %3d credits  %s", marker, p.Name, p.Credits, p.Price)
}
