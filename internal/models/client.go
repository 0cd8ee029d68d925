package models

import "time"

// Client represents a billed customer.
type Client struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Code is an optional external client identifier. When set it must be
	// unique across the roster.
	Code string `gorm:"size:50;uniqueIndex:idx_clients_code,where:code <> ''" json:"code,omitempty"`

	Name      string `gorm:"size:255;not null" json:"name"`
	FirstName string `gorm:"size:255" json:"first_name,omitempty"`
	Email     string `gorm:"size:255" json:"email,omitempty"`
	Phone     string `gorm:"size:50" json:"phone,omitempty"`

	// Address
	Address    string `gorm:"size:500" json:"address,omitempty"`
	PostalCode string `gorm:"size:20" json:"postal_code,omitempty"`
	City       string `gorm:"size:100" json:"city,omitempty"`
	Country    string `gorm:"size:100;default:'France'" json:"country"`

	LogoPath string `gorm:"size:500" json:"logo_path,omitempty"`
}

// FullName returns "Name FirstName" with the first name omitted when empty.
func (c *Client) FullName() string {
	if c.FirstName == "" {
		return c.Name
	}
	return c.Name + " " + c.FirstName
}

// FullAddress returns the formatted postal address.
func (c *Client) FullAddress() string {
	addr := c.Address
	if c.PostalCode != "" || c.City != "" {
		if addr != "" {
			addr += "\n"
		}
		addr += c.PostalCode
		if c.PostalCode != "" && c.City != "" {
			addr += " "
		}
		addr += c.City
	}
	if c.Country != "" {
		if addr != "" {
			addr += "\n"
		}
		addr += c.Country
	}
	return addr
}
