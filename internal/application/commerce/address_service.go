package commerce

import (
	"context"

	"github.com/google/uuid"
	"github.com/orderdesk/backend/internal/domain/commerce"
	"github.com/orderdesk/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AddressService handles address operations
type AddressService struct {
	addresses commerce.AddressRepository
	tm        TransactionManager
	logger    *zap.Logger
}

// NewAddressService creates a new address service
func NewAddressService(addresses commerce.AddressRepository, tm TransactionManager, logger *zap.Logger) *AddressService {
	return &AddressService{addresses: addresses, tm: tm, logger: logger}
}

// Get loads one address by id.
func (s *AddressService) Get(ctx context.Context, id uuid.UUID) (*commerce.Address, error) {
	return s.addresses.GetByID(ctx, nil, id)
}

// ListByCustomer returns all addresses of a customer's book.
func (s *AddressService) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]commerce.Address, error) {
	return s.addresses.ListByCustomer(ctx, nil, customerID)
}

// Create validates the input and persists a new address.
func (s *AddressService) Create(ctx context.Context, in CreateAddressInput) (*commerce.Address, error) {
	if err := validateInput(&in); err != nil {
		return nil, err
	}
	address := &commerce.Address{
		BaseEntity: shared.NewBaseEntity(),
		Kind:       commerce.AddressKind(in.Kind),
		FirstName:  in.FirstName,
		LastName:   in.LastName,
		City:       in.City,
		State:      in.State,
		Zip:        in.Zip,
		Country:    in.Country,
		Phone:      in.Phone,
		CustomerID: in.CustomerID,
	}
	address.SetStreetLines(in.Street)
	address.SetGeo(inputGeo(in.Geo, in.Latitude, in.Longitude))
	if err := address.Validate(); err != nil {
		return nil, err
	}
	if err := s.addresses.Create(ctx, nil, address); err != nil {
		return nil, err
	}
	s.logger.Info("address created", zap.String("address_id", address.ID.String()))
	return address, nil
}

// Update applies a partial update. When the update rewrites any field the
// coordinates were derived from on a geocoded address, it must also set or
// explicitly clear the coordinates; otherwise the stored pair would silently
// describe the old location and the update is rejected.
func (s *AddressService) Update(ctx context.Context, id uuid.UUID, in UpdateAddressInput) (*commerce.Address, error) {
	if err := validateInput(&in); err != nil {
		return nil, err
	}
	var updated *commerce.Address
	err := s.tm.Atomic(ctx, func(tx *gorm.DB) error {
		address, err := s.addresses.GetByID(ctx, tx, id)
		if err != nil {
			return err
		}
		next := *address
		applyAddressUpdate(&next, in)
		if address.HasGeo() && address.GeoSourceChanged(&next) && !in.providesGeo() {
			return shared.NewValidationError("geo", shared.ErrCodeStaleCoordinates,
				"update changes the geocoded location fields; set new coordinates or clear them explicitly")
		}
		if err := next.Validate(); err != nil {
			return err
		}
		next.Touch()
		if err := s.addresses.Update(ctx, tx, &next); err != nil {
			return err
		}
		updated = &next
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes an address.
func (s *AddressService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.addresses.Delete(ctx, nil, id)
}

func applyAddressUpdate(a *commerce.Address, in UpdateAddressInput) {
	if in.FirstName != nil {
		a.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		a.LastName = *in.LastName
	}
	if len(in.Street) > 0 {
		a.SetStreetLines(in.Street)
	}
	if in.City != nil {
		a.City = *in.City
	}
	if in.State != nil {
		a.State = *in.State
	}
	if in.Zip != nil {
		a.Zip = *in.Zip
	}
	if in.Country != nil {
		a.Country = *in.Country
	}
	if in.Phone != nil {
		a.Phone = *in.Phone
	}
	if in.Geo.Set {
		a.SetGeo(geoFromInput(in.Geo.Value))
	} else if in.Latitude != nil && in.Longitude != nil {
		a.SetGeo(&commerce.GeoPoint{Lat: *in.Latitude, Lon: *in.Longitude})
	}
}

func geoFromInput(g *GeoInput) *commerce.GeoPoint {
	if g == nil {
		return nil
	}
	return &commerce.GeoPoint{Lat: g.Lat, Lon: g.Lon}
}

func inputGeo(combined *GeoInput, lat, lon *decimal.Decimal) *commerce.GeoPoint {
	if combined != nil {
		return geoFromInput(combined)
	}
	if lat != nil && lon != nil {
		return &commerce.GeoPoint{Lat: *lat, Lon: *lon}
	}
	return nil
}
