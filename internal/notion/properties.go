package notion

import (
	"time"

	"github.com/kmarsden/skatetrack/internal/model"
)

// Property names in the status database. Every "which field name did the
// external schema use" decision lives in this file.
const (
	propName         = "Name"
	propOrderNumber  = "Order Number"
	propContact      = "Contact"
	propBootModel    = "Boot Model"
	propBladeModel   = "Blade Model"
	propSize         = "Size"
	propStatus       = "Status"
	propBootStatus   = "Boot Status"
	propBladeStatus  = "Blade Status"
	propBootNotes    = "Boot Notes"
	propBladeNotes   = "Blade Notes"
	propSupplier     = "Supplier"
	propBootArrival  = "Boot Arrival"
	propBladeArrival = "Blade Arrival"
	propLastReviewed = "Last Reviewed"
)

// Wire shapes for the document database's page properties. Each property is
// tagged by kind: title/rich_text carry text runs, select carries one named
// option, date carries a start date.
type page struct {
	ID         string              `json:"id"`
	Properties map[string]property `json:"properties"`
}

type property struct {
	Type     string        `json:"type,omitempty"`
	Title    []richText    `json:"title,omitempty"`
	RichText []richText    `json:"rich_text,omitempty"`
	Select   *selectOption `json:"select,omitempty"`
	Date     *dateValue    `json:"date,omitempty"`
}

type richText struct {
	Text      *textContent `json:"text,omitempty"`
	PlainText string       `json:"plain_text,omitempty"`
}

type textContent struct {
	Content string `json:"content"`
}

type selectOption struct {
	Name string `json:"name"`
}

type dateValue struct {
	Start string `json:"start"`
}

// toStatusRecord maps one raw page to the internal status record.
func toStatusRecord(p page) model.StatusRecord {
	return model.StatusRecord{
		ID:           p.ID,
		OrderNumber:  textOf(p, propOrderNumber),
		CustomerName: textOf(p, propName),
		Contact:      textOf(p, propContact),
		BootModel:    textOf(p, propBootModel),
		BladeModel:   textOf(p, propBladeModel),
		Size:         textOf(p, propSize),
		Status:       selectOf(p, propStatus),
		BootStatus:   selectOf(p, propBootStatus),
		BladeStatus:  selectOf(p, propBladeStatus),
		BootNotes:    textOf(p, propBootNotes),
		BladeNotes:   textOf(p, propBladeNotes),
		Supplier:     selectOf(p, propSupplier),
		BootArrival:  dateOf(p, propBootArrival),
		BladeArrival: dateOf(p, propBladeArrival),
		LastReviewed: dateOf(p, propLastReviewed),
	}
}

// textOf flattens a title or rich_text property into one string.
func textOf(p page, name string) string {
	prop, ok := p.Properties[name]
	if !ok {
		return ""
	}
	runs := prop.Title
	if len(runs) == 0 {
		runs = prop.RichText
	}
	var out string
	for _, run := range runs {
		out += run.PlainText
	}
	return out
}

func selectOf(p page, name string) string {
	prop, ok := p.Properties[name]
	if !ok || prop.Select == nil {
		return ""
	}
	return prop.Select.Name
}

func dateOf(p page, name string) *time.Time {
	prop, ok := p.Properties[name]
	if !ok || prop.Date == nil || prop.Date.Start == "" {
		return nil
	}
	// Dates arrive either as a bare day or with a time component.
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, prop.Date.Start); err == nil {
			return &t
		}
	}
	return nil
}

// recordProperties builds the page properties for creating a status record.
// Empty fields are omitted rather than written as blanks.
func recordProperties(rec model.StatusRecord) map[string]property {
	props := map[string]property{
		propName:        {Title: []richText{{Text: &textContent{Content: rec.CustomerName}}}},
		propOrderNumber: {RichText: []richText{{Text: &textContent{Content: rec.OrderNumber}}}},
	}

	setText := func(name, value string) {
		if value != "" {
			props[name] = property{RichText: []richText{{Text: &textContent{Content: value}}}}
		}
	}
	setSelect := func(name, value string) {
		if value != "" {
			props[name] = property{Select: &selectOption{Name: value}}
		}
	}

	setText(propContact, rec.Contact)
	setText(propBootModel, rec.BootModel)
	setText(propBladeModel, rec.BladeModel)
	setText(propSize, rec.Size)
	setText(propBootNotes, rec.BootNotes)
	setText(propBladeNotes, rec.BladeNotes)
	setSelect(propStatus, rec.Status)
	setSelect(propBootStatus, rec.BootStatus)
	setSelect(propBladeStatus, rec.BladeStatus)
	setSelect(propSupplier, rec.Supplier)
	if rec.LastReviewed != nil {
		props[propLastReviewed] = property{Date: &dateValue{Start: rec.LastReviewed.Format("2006-01-02")}}
	}

	return props
}
