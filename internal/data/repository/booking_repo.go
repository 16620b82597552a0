package repository

import (
	"context"
	"fmt"
	"time"

	"venue-booking/internal/data/entity"
	"venue-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type BookingRepository interface {
	CreateProvisional(ctx context.Context, booking *entity.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Booking, error)
	CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error)

	// Business queries
	FindPaidSlots(ctx context.Context, venueID uuid.UUID, playDate string) ([]string, error)
	AttachOrder(ctx context.Context, bookingID uuid.UUID, orderID string) error
	Settle(ctx context.Context, bookingID uuid.UUID, paymentID, method string) (bool, error)
	PurgeProvisionalBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

type bookingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookingRepository(db database.PgxIface, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

// venueDateLock serializes writers for one (venue, date) pair inside the
// current transaction. Both CreateProvisional and Settle take it before
// checking paid overlaps, so the check-and-write below is race-free without
// any global lock.
func venueDateLock(ctx context.Context, tx pgx.Tx, venueID uuid.UUID, playDate string) error {
	_, err := tx.Exec(ctx,
		`SELECT pg_advisory_xact_lock(hashtextextended($1, 0))`,
		venueID.String()+"|"+playDate,
	)
	if err != nil {
		return fmt.Errorf("acquire venue/date lock: %w", err)
	}
	return nil
}

// paidOverlapExists reports whether any *other* paid booking already claims
// one of the given slots for the same venue and date. Provisional bookings
// never count.
func paidOverlapExists(ctx context.Context, tx pgx.Tx, venueID uuid.UUID, playDate string, slots []string, excludeID uuid.UUID) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM bookings
			WHERE venue_id = $1 AND play_date = $2 AND is_paid = TRUE
			  AND id <> $3 AND slots && $4::text[]
		)
	`

	var exists bool
	if err := tx.QueryRow(ctx, query, venueID, playDate, excludeID, slots).Scan(&exists); err != nil {
		return false, fmt.Errorf("check paid slot overlap: %w", err)
	}

	return exists, nil
}

// CreateProvisional persists an unpaid booking after re-checking, atomically
// with the insert, that none of its slots belong to a paid booking. Two
// overlapping provisional bookings may both succeed here; settlement decides
// the winner.
func (r *bookingRepository) CreateProvisional(ctx context.Context, booking *entity.Booking) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin create booking: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := venueDateLock(ctx, tx, booking.VenueID, booking.PlayDate); err != nil {
		return err
	}

	sold, err := paidOverlapExists(ctx, tx, booking.VenueID, booking.PlayDate, booking.Slots, booking.ID)
	if err != nil {
		return err
	}
	if sold {
		return entity.ErrSlotConflict
	}

	query := `
		INSERT INTO bookings (id, user_id, venue_id, play_date, slots, slot_list,
		                      total_amount, is_paid, order_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, FALSE, '', $8, $9)
	`

	_, err = tx.Exec(ctx, query,
		booking.ID,
		booking.UserID,
		booking.VenueID,
		booking.PlayDate,
		booking.Slots,
		booking.SlotList,
		booking.TotalAmount,
		booking.CreatedAt,
		booking.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("booking_id", booking.ID.String()),
			zap.String("venue_id", booking.VenueID.String()),
			zap.String("play_date", booking.PlayDate),
		)
		return fmt.Errorf("create booking %s: %w", booking.ID.String(), err)
	}

	return tx.Commit(ctx)
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	query := `
		SELECT id, user_id, venue_id, play_date, slots, slot_list, total_amount,
		       is_paid, order_id, payment_id, payment_method, created_at, updated_at
		FROM bookings
		WHERE id = $1
	`

	var booking entity.Booking
	err := r.db.QueryRow(ctx, query, id).Scan(
		&booking.ID,
		&booking.UserID,
		&booking.VenueID,
		&booking.PlayDate,
		&booking.Slots,
		&booking.SlotList,
		&booking.TotalAmount,
		&booking.IsPaid,
		&booking.OrderID,
		&booking.PaymentID,
		&booking.PaymentMethod,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by ID",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return nil, fmt.Errorf("find booking by ID %s: %w", id.String(), err)
	}

	return &booking, nil
}

func (r *bookingRepository) FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Booking, error) {
	query := `
		SELECT id, user_id, venue_id, play_date, slots, slot_list, total_amount,
		       is_paid, order_id, payment_id, payment_method, created_at, updated_at
		FROM bookings
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, userID, limit, offset)
	if err != nil {
		r.log.Error("Failed to find bookings by user ID",
			zap.Error(err),
			zap.String("user_id", userID.String()),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find bookings by user ID %s: %w", userID.String(), err)
	}
	defer rows.Close()

	var bookings []*entity.Booking
	for rows.Next() {
		var booking entity.Booking
		err := rows.Scan(
			&booking.ID,
			&booking.UserID,
			&booking.VenueID,
			&booking.PlayDate,
			&booking.Slots,
			&booking.SlotList,
			&booking.TotalAmount,
			&booking.IsPaid,
			&booking.OrderID,
			&booking.PaymentID,
			&booking.PaymentMethod,
			&booking.CreatedAt,
			&booking.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan booking row", zap.Error(err))
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		bookings = append(bookings, &booking)
	}

	return bookings, nil
}

func (r *bookingRepository) CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM bookings WHERE user_id = $1`

	var count int64
	err := r.db.QueryRow(ctx, query, userID).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count bookings by user ID",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return 0, fmt.Errorf("count bookings by user ID %s: %w", userID.String(), err)
	}

	return count, nil
}

// FindPaidSlots returns every slot label covered by a paid booking for the
// venue and date. The availability index subtracts these from the venue's
// open hours.
func (r *bookingRepository) FindPaidSlots(ctx context.Context, venueID uuid.UUID, playDate string) ([]string, error) {
	query := `
		SELECT slots FROM bookings
		WHERE venue_id = $1 AND play_date = $2 AND is_paid = TRUE
	`

	rows, err := r.db.Query(ctx, query, venueID, playDate)
	if err != nil {
		r.log.Error("Failed to find paid slots",
			zap.Error(err),
			zap.String("venue_id", venueID.String()),
			zap.String("play_date", playDate),
		)
		return nil, fmt.Errorf("find paid slots for venue %s on %s: %w", venueID.String(), playDate, err)
	}
	defer rows.Close()

	var taken []string
	for rows.Next() {
		var slots []string
		if err := rows.Scan(&slots); err != nil {
			r.log.Error("Failed to scan paid slots row", zap.Error(err))
			return nil, fmt.Errorf("scan paid slots row: %w", err)
		}
		taken = append(taken, slots...)
	}

	return taken, nil
}

// AttachOrder binds a processor order to the booking. A booking gets at most
// one order for its lifetime; rebinding the same order id is a no-op so
// gateway retries stay idempotent.
func (r *bookingRepository) AttachOrder(ctx context.Context, bookingID uuid.UUID, orderID string) error {
	query := `
		UPDATE bookings
		SET order_id = $2, updated_at = NOW()
		WHERE id = $1 AND (order_id = '' OR order_id = $2)
	`

	result, err := r.db.Exec(ctx, query, bookingID, orderID)
	if err != nil {
		r.log.Error("Failed to attach order to booking",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
			zap.String("order_id", orderID),
		)
		return fmt.Errorf("attach order %s to booking %s: %w", orderID, bookingID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("booking %s already has a different payment order", bookingID.String())
	}

	return nil
}

// Settle is the single settlement authority. It idempotently flips exactly
// one booking from unpaid to paid:
//   - row lock on the booking, then the (venue, date) advisory lock
//   - already paid: no-op success (confirmation delivery is at-least-once)
//   - another paid booking overlaps a slot: ErrSlotAlreadySold
//   - otherwise the conditional write commits the paid transition
//
// Returns true when this call performed the transition.
func (r *bookingRepository) Settle(ctx context.Context, bookingID uuid.UUID, paymentID, method string) (bool, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return false, fmt.Errorf("begin settle: %w", err)
	}
	defer tx.Rollback(ctx)

	var (
		venueID  uuid.UUID
		playDate string
		slots    []string
		isPaid   bool
	)
	err = tx.QueryRow(ctx,
		`SELECT venue_id, play_date, slots, is_paid FROM bookings WHERE id = $1 FOR UPDATE`,
		bookingID,
	).Scan(&venueID, &playDate, &slots, &isPaid)

	if err == pgx.ErrNoRows {
		return false, entity.ErrBookingNotFound
	}
	if err != nil {
		r.log.Error("Failed to lock booking for settlement",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
		)
		return false, fmt.Errorf("lock booking %s for settlement: %w", bookingID.String(), err)
	}

	if isPaid {
		// Another confirmation path already settled this booking.
		return false, tx.Commit(ctx)
	}

	if err := venueDateLock(ctx, tx, venueID, playDate); err != nil {
		return false, err
	}

	sold, err := paidOverlapExists(ctx, tx, venueID, playDate, slots, bookingID)
	if err != nil {
		return false, err
	}
	if sold {
		r.log.Warn("Settlement rejected, slot already sold",
			zap.String("booking_id", bookingID.String()),
			zap.String("venue_id", venueID.String()),
			zap.String("play_date", playDate),
		)
		return false, entity.ErrSlotAlreadySold
	}

	query := `
		UPDATE bookings
		SET is_paid = TRUE, payment_id = $2, payment_method = $3, updated_at = NOW()
		WHERE id = $1 AND is_paid = FALSE
	`

	result, err := tx.Exec(ctx, query, bookingID, paymentID, method)
	if err != nil {
		r.log.Error("Failed to settle booking",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
			zap.String("payment_id", paymentID),
		)
		return false, fmt.Errorf("settle booking %s: %w", bookingID.String(), err)
	}
	if result.RowsAffected() == 0 {
		// Raced by another settlement between the read and the write; the
		// row lock makes this unreachable, but treat it as the no-op case.
		return false, tx.Commit(ctx)
	}

	if err := tx.Commit(ctx); err != nil {
		return false, fmt.Errorf("commit settle %s: %w", bookingID.String(), err)
	}

	return true, nil
}

// PurgeProvisionalBefore deletes abandoned unpaid bookings created before the
// cutoff. Paid bookings are never touched.
func (r *bookingRepository) PurgeProvisionalBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	query := `DELETE FROM bookings WHERE is_paid = FALSE AND created_at < $1`

	result, err := r.db.Exec(ctx, query, cutoff)
	if err != nil {
		r.log.Error("Failed to purge provisional bookings",
			zap.Error(err),
			zap.Time("cutoff", cutoff),
		)
		return 0, fmt.Errorf("purge provisional bookings before %s: %w", cutoff, err)
	}

	return result.RowsAffected(), nil
}
