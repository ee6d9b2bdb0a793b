package event

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/muhammadheryan/runhub-checkout/model"
)

type SQL struct {
	conn *sqlx.DB
}

type EventRepository interface {
	GetByID(ctx context.Context, id uint64) (*model.Event, error)
}

func NewEventRepository(conn *sqlx.DB) EventRepository {
	return &SQL{conn: conn}
}

const getEvent = `SELECT id, name, price_5km, price_10km, price_21km, price_42km FROM event WHERE id = ?`

func (s *SQL) GetByID(ctx context.Context, id uint64) (*model.Event, error) {
	var ev model.Event
	if err := s.conn.QueryRowxContext(ctx, getEvent, id).StructScan(&ev); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &ev, nil
}
