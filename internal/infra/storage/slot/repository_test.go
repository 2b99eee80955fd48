package slot

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Стаб-драйвер поверх database/sql, моделирующий таблицу slot_reservations.
// Занятое место отвечает пустым результатом, как и настоящий
// ON CONFLICT DO NOTHING: внутри транзакции проба занятого места не должна
// порождать ошибку стейтмента, иначе PostgreSQL абортит транзакцию и
// следующий INSERT уже не выполнится

type slotTableState struct {
	mu      sync.Mutex
	taken   map[int64]bool
	nextID  int64
	queries []string
}

type slotConnector struct {
	state *slotTableState
}

func (c *slotConnector) Connect(context.Context) (driver.Conn, error) {
	return &slotConn{state: c.state}, nil
}

func (c *slotConnector) Driver() driver.Driver {
	return slotDriver{}
}

type slotDriver struct{}

func (slotDriver) Open(string) (driver.Conn, error) {
	return nil, errors.New("use sql.OpenDB")
}

type slotConn struct {
	state *slotTableState
}

func (c *slotConn) Prepare(string) (driver.Stmt, error) {
	return nil, errors.New("prepare is not supported")
}

func (c *slotConn) Close() error {
	return nil
}

func (c *slotConn) Begin() (driver.Tx, error) {
	return nil, errors.New("begin is not supported")
}

func (c *slotConn) QueryContext(_ context.Context, query string, args []driver.NamedValue) (driver.Rows, error) {
	c.state.mu.Lock()
	defer c.state.mu.Unlock()

	c.state.queries = append(c.state.queries, query)

	if !strings.Contains(query, "ON CONFLICT (center_id, appointment_date, time_slot, slot_no) DO NOTHING") {
		// Обычный INSERT упал бы с 23505 и абортнул транзакцию
		return nil, errors.New("pq: duplicate key value violates unique constraint \"uq_slot_reservation\"")
	}

	// Порядок аргументов фиксирован порядком колонок INSERT:
	// center_id, appointment_date, time_slot, slot_no, booking_ref
	slotNo := args[3].Value.(int64)
	if c.state.taken[slotNo] {
		return &stubRows{cols: []string{"id", "created_at"}}, nil
	}

	c.state.taken[slotNo] = true
	c.state.nextID++
	return &stubRows{
		cols: []string{"id", "created_at"},
		rows: [][]driver.Value{{c.state.nextID, time.Now()}},
	}, nil
}

type stubRows struct {
	cols []string
	rows [][]driver.Value
}

func (r *stubRows) Columns() []string {
	return r.cols
}

func (r *stubRows) Close() error {
	return nil
}

func (r *stubRows) Next(dest []driver.Value) error {
	if len(r.rows) == 0 {
		return io.EOF
	}
	copy(dest, r.rows[0])
	r.rows = r.rows[1:]
	return nil
}

func newSlotFixture(taken ...int64) (*Repository, *slotTableState) {
	state := &slotTableState{taken: make(map[int64]bool)}
	for _, slotNo := range taken {
		state.taken[slotNo] = true
	}
	return NewRepository(sql.OpenDB(&slotConnector{state: state})), state
}

// Занятое место slot_no=0 не мешает занять следующее в той же транзакции
func TestReserve_SkipsTakenSpot(t *testing.T) {
	repo, state := newSlotFixture(0)

	date := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	reservation, err := repo.Reserve(context.Background(), 10, date, "09:00-10:00", 2, "DGB-20260310-aaaa1111")
	require.NoError(t, err)

	assert.Equal(t, 1, reservation.SlotNo)
	assert.Equal(t, int64(10), reservation.CenterID)
	require.Len(t, state.queries, 2)
}

func TestReserve_FirstSpotFree(t *testing.T) {
	repo, state := newSlotFixture()

	date := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	reservation, err := repo.Reserve(context.Background(), 10, date, "09:00-10:00", 3, "DGB-20260310-bbbb2222")
	require.NoError(t, err)

	assert.Equal(t, 0, reservation.SlotNo)
	assert.Len(t, state.queries, 1)
}

func TestReserve_AllSpotsTaken(t *testing.T) {
	repo, state := newSlotFixture(0, 1)

	date := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	_, err := repo.Reserve(context.Background(), 10, date, "09:00-10:00", 2, "DGB-20260310-cccc3333")
	assert.ErrorIs(t, err, ErrSlotTaken)
	assert.Len(t, state.queries, 2)
}
