package model

import "time"

// Property is a real-estate listing.  Every property belongs to exactly one
// owner through the OwnerID foreign key; images and traces reference the
// property the same way.  Back-navigation (owner -> properties, property ->
// images/traces) is always a query, never a stored pointer.  Corresponds to
// the `properties` table.
//
// Fields:
//  ID           – primary key identifier.
//  Name         – listing name; unique across properties at creation time.
//  Address      – street address of the property.
//  Price        – current asking price, DECIMAL(18,2) in the database.
//  CodeInternal – short internal reference code.
//  Year         – construction year kept as text, e.g. "2020".
//  OwnerID      – owning user, references owners.id (mandatory).
//  CreatedAt    – creation timestamp.
//  UpdatedAt    – last update timestamp.
type Property struct {
    ID           uint64    // properties.id
    Name         string    // properties.name
    Address      string    // properties.address
    Price        float64   // properties.price
    CodeInternal string    // properties.code_internal
    Year         string    // properties.year
    OwnerID      uint64    // properties.owner_id
    CreatedAt    time.Time // properties.created_at
    UpdatedAt    time.Time // properties.updated_at
}

// PropertyImage is a file attached to a property.  A property may carry any
// number of images; each image belongs to exactly one property.  Corresponds
// to the `property_images` table.
//
// Fields:
//  ID         – primary key identifier.
//  PropertyID – parent property, references properties.id.
//  File       – file reference, at most 500 characters.
//  Enabled    – whether the image is shown.
//  CreatedAt  – creation timestamp.
type PropertyImage struct {
    ID         uint64    // property_images.id
    PropertyID uint64    // property_images.property_id
    File       string    // property_images.file
    Enabled    bool      // property_images.enabled
    CreatedAt  time.Time // property_images.created_at
}

// PropertyTrace is one entry of a property's denormalized sale history.
// Traces are appended as a side effect of creating or updating a property
// and are never written independently.  Corresponds to the
// `property_traces` table.
//
// Fields:
//  ID         – primary key identifier.
//  PropertyID – parent property, references properties.id.
//  DateSale   – when the sale value was recorded.
//  Name       – property name at the time of the record.
//  Value      – sale value, DECIMAL(18,2) in the database.
//  Tax        – tax recorded with the sale, DECIMAL(18,2).
//  CreatedAt  – creation timestamp.
type PropertyTrace struct {
    ID         uint64    // property_traces.id
    PropertyID uint64    // property_traces.property_id
    DateSale   time.Time // property_traces.date_sale
    Name       string    // property_traces.name
    Value      float64   // property_traces.value
    Tax        float64   // property_traces.tax
    CreatedAt  time.Time // property_traces.created_at
}
