package model

import "time"

// Owner is the person or entity holding title to one or more properties.
// Owners are referenced by properties but never cascaded: deleting or
// managing owners is outside the HTTP surface of this service, so rows are
// created by seeding or by an external system.  Corresponds to the `owners`
// table.
//
// Fields:
//  ID        – primary key identifier.
//  Name      – full name of the owner.
//  Address   – postal address.
//  Photo     – reference (path or URL) to the owner's photo.
//  Birthday  – date of birth.
//  CreatedAt – timestamp when the row was created.
type Owner struct {
    ID        uint64    // owners.id
    Name      string    // owners.name
    Address   string    // owners.address
    Photo     string    // owners.photo
    Birthday  time.Time // owners.birthday
    CreatedAt time.Time // owners.created_at
}
