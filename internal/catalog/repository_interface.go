package catalog

import "context"

type Repository interface {
	GetServiceByID(ctx context.Context, id int) (*Service, error)
	ListServices(ctx context.Context, limit, offset int) ([]Service, error)
	ListServicesByProvider(ctx context.Context, providerID int) ([]Service, error)
	RecomputeRating(ctx context.Context, serviceID int) error
}
