package models

import (
	"fmt"

	"hvacquote-backend/pricing"
)

// Client holds the contact block of a draft as typed by the user. Everything
// except the unit is required for the draft to be complete.
type Client struct {
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
	Street     string `json:"street"`
	Unit       string `json:"unit"`
	City       string `json:"city"`
	Province   string `json:"province"`
	PostalCode string `json:"postalCode"`
}

// Draft is the in-progress quote being edited: raw client text, an ordered
// list of item rows and a flat service fee. It is mutated field by field and
// discarded after a successful save.
type Draft struct {
	Client     Client         `json:"client"`
	Items      []pricing.Item `json:"items"`
	ServiceFee string         `json:"serviceFee"`
}

// ClientField names one editable client field.
type ClientField string

const (
	ClientFieldName       ClientField = "name"
	ClientFieldPhone      ClientField = "phone"
	ClientFieldEmail      ClientField = "email"
	ClientFieldStreet     ClientField = "street"
	ClientFieldUnit       ClientField = "unit"
	ClientFieldCity       ClientField = "city"
	ClientFieldProvince   ClientField = "province"
	ClientFieldPostalCode ClientField = "postalCode"
)

// ItemField names one editable line-item field.
type ItemField string

const (
	ItemFieldCatalogNumber ItemField = "catalogNumber"
	ItemFieldDescription   ItemField = "description"
	ItemFieldUnitPrice     ItemField = "unitPrice"
	ItemFieldQuantity      ItemField = "quantity"
	ItemFieldMargin        ItemField = "margin"
)

// NewDraft returns an empty draft with a single blank item row.
func NewDraft() *Draft {
	return &Draft{Items: []pricing.Item{{}}}
}

// AddItem appends a blank row at the end of the list.
func (d *Draft) AddItem() {
	d.Items = append(d.Items, pricing.Item{})
}

// RemoveItem deletes the row at index. Removing the last remaining row is
// allowed; the list may become empty.
func (d *Draft) RemoveItem(index int) error {
	if index < 0 || index >= len(d.Items) {
		return fmt.Errorf("item index %d out of range", index)
	}
	d.Items = append(d.Items[:index], d.Items[index+1:]...)
	return nil
}

// UpdateItemField sets one field of one row. Entering the reserved labor-only
// catalog number replaces the whole row with the fixed labor-only shape,
// regardless of what the row held before. An unknown field name is an error.
func (d *Draft) UpdateItemField(index int, field ItemField, value string) error {
	if index < 0 || index >= len(d.Items) {
		return fmt.Errorf("item index %d out of range", index)
	}

	if field == ItemFieldCatalogNumber && value == pricing.LaborOnlyCatalogNumber {
		d.Items[index] = pricing.LaborOnlyItem()
		return nil
	}

	item := &d.Items[index]
	switch field {
	case ItemFieldCatalogNumber:
		item.CatalogNumber = value
	case ItemFieldDescription:
		item.Description = value
	case ItemFieldUnitPrice:
		item.UnitPrice = value
	case ItemFieldQuantity:
		item.Quantity = value
	case ItemFieldMargin:
		item.Margin = value
	default:
		return fmt.Errorf("unknown item field %q", field)
	}
	return nil
}

// SetClientField sets one client field. An unknown field name is an error.
func (d *Draft) SetClientField(field ClientField, value string) error {
	switch field {
	case ClientFieldName:
		d.Client.Name = value
	case ClientFieldPhone:
		d.Client.Phone = value
	case ClientFieldEmail:
		d.Client.Email = value
	case ClientFieldStreet:
		d.Client.Street = value
	case ClientFieldUnit:
		d.Client.Unit = value
	case ClientFieldCity:
		d.Client.City = value
	case ClientFieldProvince:
		d.Client.Province = value
	case ClientFieldPostalCode:
		d.Client.PostalCode = value
	default:
		return fmt.Errorf("unknown client field %q", field)
	}
	return nil
}

// SetServiceFee replaces the flat service fee text.
func (d *Draft) SetServiceFee(value string) {
	d.ServiceFee = value
}

// IsComplete reports whether the draft may be previewed or saved: every
// required client field is non-empty and at least one item row is valid.
func (d *Draft) IsComplete() bool {
	c := d.Client
	if c.Name == "" || c.Phone == "" || c.Email == "" || c.Street == "" ||
		c.City == "" || c.Province == "" || c.PostalCode == "" {
		return false
	}
	for _, it := range d.Items {
		if it.IsValid() {
			return true
		}
	}
	return false
}

// Totals runs the shared pricing computation over the current rows and fee.
func (d *Draft) Totals() pricing.Totals {
	return pricing.ComputeTotals(d.Items, d.ServiceFee)
}

// Clone returns a deep copy so callers can build a quote from a snapshot
// while the original keeps receiving edits.
func (d *Draft) Clone() *Draft {
	out := *d
	out.Items = make([]pricing.Item, len(d.Items))
	copy(out.Items, d.Items)
	return &out
}
