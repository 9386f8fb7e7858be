package catalog

import (
	"context"

	"go.uber.org/zap"
)

type Service struct {
	store   Store
	log     *zap.Logger
	metrics *Metrics
}

// NewService wires the catalog use cases. log and metrics may be nil.
func NewService(store Store, log *zap.Logger, metrics *Metrics) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	metrics.setStored(store.Len())
	return &Service{store: store, log: log, metrics: metrics}
}

func (s *Service) List(ctx context.Context, gender, season Constraint) ([]Garment, error) {
	all, err := s.store.All(ctx)
	if err != nil {
		return nil, err
	}
	return FilterByAttributes(all, gender, season), nil
}

func (s *Service) UnderPrice(ctx context.Context, maxPrice string) ([]Garment, error) {
	all, err := s.store.All(ctx)
	if err != nil {
		return nil, err
	}
	return FilterByMaxPrice(all, maxPrice), nil
}

func (s *Service) Add(ctx context.Context, in GarmentInput) (Garment, error) {
	g, err := in.Garment()
	if err != nil {
		s.metrics.observeAppend(resultInvalid, s.store.Len())
		return Garment{}, err
	}

	if err := s.store.Append(ctx, g); err != nil {
		result := resultError
		if IsValidation(err) {
			result = resultInvalid
		}
		s.metrics.observeAppend(result, s.store.Len())
		return Garment{}, err
	}

	s.metrics.observeAppend(resultSuccess, s.store.Len())
	s.log.Info("garment added",
		zap.String("description", g.Description),
		zap.Float64("price", g.Price),
	)
	return g, nil
}

func (s *Service) Ready(ctx context.Context) error {
	return s.store.Ping(ctx)
}
