package refresh

import "context"

// View vista tipada sobre el Store: clave fija + política + función de recomputo.
type View[T any] struct {
	store  *Store
	key    Key
	policy Policy
	fetch  func(ctx context.Context) (T, error)
}

// NewView registra una vista de clave fija.
func NewView[T any](store *Store, key Key, policy Policy, fetch func(ctx context.Context) (T, error)) *View[T] {
	return &View[T]{store: store, key: key, policy: policy, fetch: fetch}
}

func (v *View[T]) Key() Key       { return v.key }
func (v *View[T]) Policy() Policy { return v.policy }

// Get devuelve el valor vigente o lo recomputa.
func (v *View[T]) Get(ctx context.Context) (T, error) {
	return Load(ctx, v.store, v.key, v.policy, v.fetch)
}

// Warm recomputa la vista aunque siga vigente (la usa el Refresher cuando le toca).
func (v *View[T]) Warm(ctx context.Context) error {
	_, err := v.store.Refresh(ctx, v.key, v.policy, func(ctx context.Context) (any, error) {
		return v.fetch(ctx)
	})
	return err
}

// Invalidate descarta solo esta vista.
func (v *View[T]) Invalidate() bool { return v.store.InvalidateKey(v.key) }

// State estado para presentación.
func (v *View[T]) State() ViewState { return v.store.State(v.key) }

// Load lectura tipada para vistas parametrizadas (la clave cambia por llamada).
func Load[T any](ctx context.Context, store *Store, key Key, policy Policy, fetch func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	val, err := store.Get(ctx, key, policy, func(ctx context.Context) (any, error) {
		return fetch(ctx)
	})
	if err != nil {
		return zero, err
	}
	out, ok := val.(T)
	if !ok {
		return zero, nil
	}
	return out, nil
}
