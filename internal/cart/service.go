package cart

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"
)

// Service applies cart mutations against the per-owner persisted snapshot:
// load, decode, mutate, re-encode, save. A snapshot that fails to decode is
// treated as an empty cart; this is best-effort session state, not a ledger,
// so recovery is silent apart from a log line.
type Service struct {
	Snapshots SnapshotStore
	Log       *zap.Logger
}

func NewService(snapshots SnapshotStore, log *zap.Logger) *Service {
	return &Service{Snapshots: snapshots, Log: log}
}

func (s *Service) Get(ctx context.Context, ownerID string) (*Cart, error) {
	return s.load(ctx, ownerID)
}

func (s *Service) AddItem(ctx context.Context, ownerID string, item LineItem) (*Cart, error) {
	c, err := s.load(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if err := c.AddItem(item); err != nil {
		return nil, err
	}
	return c, s.save(ctx, ownerID, c)
}

func (s *Service) RemoveItem(ctx context.Context, ownerID, productID string) (*Cart, error) {
	c, err := s.load(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	c.RemoveItem(productID)
	return c, s.save(ctx, ownerID, c)
}

func (s *Service) SetQuantity(ctx context.Context, ownerID, productID string, quantity int) (*Cart, error) {
	c, err := s.load(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	c.SetQuantity(productID, quantity)
	return c, s.save(ctx, ownerID, c)
}

func (s *Service) Clear(ctx context.Context, ownerID string) (*Cart, error) {
	c, err := s.load(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	c.Clear()
	return c, s.save(ctx, ownerID, c)
}

func (s *Service) load(ctx context.Context, ownerID string) (*Cart, error) {
	data, ok, err := s.Snapshots.Load(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return Restore(nil), nil
	}

	var items []LineItem
	if err := json.Unmarshal(data, &items); err != nil {
		if s.Log != nil {
			s.Log.Warn("discarding malformed cart snapshot",
				zap.String("owner_id", ownerID), zap.Error(err))
		}
		return Restore(nil), nil
	}
	return Restore(items), nil
}

func (s *Service) save(ctx context.Context, ownerID string, c *Cart) error {
	data, err := json.Marshal(c.Items())
	if err != nil {
		return err
	}
	return s.Snapshots.Save(ctx, ownerID, data)
}
