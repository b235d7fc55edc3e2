// Package service holds the business rules of the property catalog.  The
// service mediates between API DTOs and persisted entities: it performs the
// referential and uniqueness checks, composes property+trace writes, and
// leaves SQL to the repositories.
package service

import (
	"context"
	"log"
	"time"

	"github.com/iliyamo/property-listing/internal/model"
	"github.com/iliyamo/property-listing/internal/queue"
	"github.com/iliyamo/property-listing/internal/repository"
)

// PropertyStore is the persistence surface the service needs for properties.
// *repository.PropertyRepo satisfies it; tests substitute an in-memory fake.
type PropertyStore interface {
	ExistsByName(ctx context.Context, name string) (bool, error)
	GetByID(ctx context.Context, id uint64) (*model.Property, error)
	CreateWithTrace(ctx context.Context, p *model.Property, t *model.PropertyTrace) error
	UpdateWithTrace(ctx context.Context, p *model.Property, t *model.PropertyTrace) error
	UpdatePrice(ctx context.Context, id uint64, price float64) error
	AddImage(ctx context.Context, img *model.PropertyImage) error
	Search(ctx context.Context, f repository.PropertyFilter) ([]*model.Property, error)
}

// OwnerStore resolves owner references before dependent writes.
type OwnerStore interface {
	GetByID(ctx context.Context, id uint64) (*model.Owner, error)
}

// TracePublisher emits an event after a trace row is persisted.  A nil
// publisher disables events entirely.
type TracePublisher func(ctx context.Context, ev queue.TraceRecordedEvent) error

// PropertyService implements the catalog operations.
type PropertyService struct {
	properties PropertyStore
	owners     OwnerStore
	publish    TracePublisher
}

// NewPropertyService wires the service with its stores.  publish may be nil
// when no broker is configured.
func NewPropertyService(properties PropertyStore, owners OwnerStore, publish TracePublisher) *PropertyService {
	if properties == nil || owners == nil {
		panic("nil store passed to NewPropertyService")
	}
	return &PropertyService{properties: properties, owners: owners, publish: publish}
}

// CreateProperty registers a new listing.  It fails with
// repository.ErrPropertyNameExists when a property with the exact same name
// exists, and with repository.ErrOwnerNotFound when the owner reference does
// not resolve.  The property row and its first trace are committed in one
// transaction; the returned DTO is the persisted projection including the
// generated identifier.
func (s *PropertyService) CreateProperty(ctx context.Context, dto PropertyDTO) (PropertyDTO, error) {
	exists, err := s.properties.ExistsByName(ctx, dto.Name)
	if err != nil {
		return PropertyDTO{}, err
	}
	if exists {
		return PropertyDTO{}, repository.ErrPropertyNameExists
	}

	owner, err := s.owners.GetByID(ctx, dto.IDOwner)
	if err != nil {
		return PropertyDTO{}, err
	}

	p := &model.Property{
		Name:         dto.Name,
		Address:      dto.Address,
		Price:        dto.Price,
		CodeInternal: dto.CodeInternal,
		Year:         dto.Year,
		OwnerID:      owner.ID,
	}
	t := newTrace(p)
	if err := s.properties.CreateWithTrace(ctx, p, t); err != nil {
		return PropertyDTO{}, err
	}
	s.emitTrace(ctx, t, "created")
	return toDTO(p), nil
}

// AddImageToProperty attaches an image to an existing property.  Fails with
// repository.ErrPropertyNotFound when the property is absent; in that case
// no image row is written.
func (s *PropertyService) AddImageToProperty(ctx context.Context, propertyID uint64, dto PropertyAddImageDTO) error {
	p, err := s.properties.GetByID(ctx, propertyID)
	if err != nil {
		return err
	}
	img := &model.PropertyImage{
		PropertyID: p.ID,
		File:       dto.File,
		Enabled:    dto.Enabled,
	}
	return s.properties.AddImage(ctx, img)
}

// ChangePropertyPrice overwrites the price field only.  No trace row is
// recorded here; only full updates append to the sale history.
func (s *PropertyService) ChangePropertyPrice(ctx context.Context, propertyID uint64, newPrice float64) error {
	p, err := s.properties.GetByID(ctx, propertyID)
	if err != nil {
		return err
	}
	return s.properties.UpdatePrice(ctx, p.ID, newPrice)
}

// UpdateProperty overwrites every mutable field and appends one trace row
// capturing the updated sale metadata, atomically.  Fails with
// repository.ErrPropertyNotFound or repository.ErrOwnerNotFound when either
// reference is absent.  Name uniqueness is not re-checked on update: a
// rename onto an existing name is allowed.
func (s *PropertyService) UpdateProperty(ctx context.Context, propertyID uint64, dto PropertyDTO) error {
	p, err := s.properties.GetByID(ctx, propertyID)
	if err != nil {
		return err
	}
	owner, err := s.owners.GetByID(ctx, dto.IDOwner)
	if err != nil {
		return err
	}

	p.Name = dto.Name
	p.Address = dto.Address
	p.Price = dto.Price
	p.CodeInternal = dto.CodeInternal
	p.Year = dto.Year
	p.OwnerID = owner.ID

	t := newTrace(p)
	if err := s.properties.UpdateWithTrace(ctx, p, t); err != nil {
		return err
	}
	s.emitTrace(ctx, t, "updated")
	return nil
}

// GetPropertiesWithFilters returns the catalog subset matching the filter.
// Empty filter fields are unconstrained; the full matching set comes back
// ordered by identifier.
func (s *PropertyService) GetPropertiesWithFilters(ctx context.Context, f PropertyFilterDTO) ([]PropertyDTO, error) {
	rows, err := s.properties.Search(ctx, repository.PropertyFilter{
		Name:         f.Name,
		Address:      f.Address,
		CodeInternal: f.CodeInternal,
		Year:         f.Year,
	})
	if err != nil {
		return nil, err
	}
	out := make([]PropertyDTO, 0, len(rows))
	for _, p := range rows {
		out = append(out, toDTO(p))
	}
	return out, nil
}

// newTrace builds the sale-history row recorded alongside a create or
// update.  The inbound DTO carries no sale date or tax, so the trace is
// stamped now with the current price as value and zero tax.
func newTrace(p *model.Property) *model.PropertyTrace {
	return &model.PropertyTrace{
		DateSale: time.Now().UTC(),
		Name:     p.Name,
		Value:    p.Price,
		Tax:      0,
	}
}

// emitTrace publishes a trace-recorded event when a publisher is wired.
// Failures are logged and swallowed: the trace row is already committed and
// the request must not fail because the broker is down.
func (s *PropertyService) emitTrace(ctx context.Context, t *model.PropertyTrace, action string) {
	if s.publish == nil {
		return
	}
	ev := queue.TraceRecordedEvent{
		PropertyID: t.PropertyID,
		Name:       t.Name,
		Value:      t.Value,
		Tax:        t.Tax,
		DateSale:   t.DateSale.Format(time.RFC3339),
		Action:     action,
		RecordedAt: time.Now().UTC().Format(time.RFC3339),
	}
	if err := s.publish(ctx, ev); err != nil {
		log.Printf("property-service: publish trace event failed: %v", err)
	}
}

func toDTO(p *model.Property) PropertyDTO {
	id := p.ID
	return PropertyDTO{
		IDProperty:   &id,
		Name:         p.Name,
		Address:      p.Address,
		Price:        p.Price,
		CodeInternal: p.CodeInternal,
		Year:         p.Year,
		IDOwner:      p.OwnerID,
	}
}
