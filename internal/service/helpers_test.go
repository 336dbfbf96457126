package service

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/alexanderramin/scholia/internal/db"
	"github.com/alexanderramin/scholia/internal/domain"
	"github.com/alexanderramin/scholia/internal/repository"
	"github.com/alexanderramin/scholia/internal/testutil"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

type recordingObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (o *recordingObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, e)
}

func (o *recordingObserver) last() UseCaseEvent {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.events[len(o.events)-1]
}

func newTicketSvc(t *testing.T, database *sql.DB, uow db.UnitOfWork, observers ...UseCaseObserver) *ticketService {
	t.Helper()
	svc := NewTicketService(repository.NewSQLiteTicketRepo(database), uow, observers...).(*ticketService)
	svc.now = fixedClock
	svc.today = fixedClock
	return svc
}

// seedScenarioTicket stores a High ticket with phase 1 "Literature Review"
// holding two tasks and an empty phase 2 "Data Collection".
func seedScenarioTicket(t *testing.T, svc TicketService) *domain.Ticket {
	t.Helper()
	ticket := testutil.NewTestTicket("Sleep and memory",
		testutil.WithPriority(domain.PriorityHigh),
		testutil.WithPhase("Literature Review", testutil.Date(2025, 3, 1)),
		testutil.WithPhase("Data Collection", testutil.Date(2025, 3, 15)),
		testutil.WithTask(1, "Search recent publications on topic", testutil.WithTaskID("t1")),
		testutil.WithTask(1, "Review and summarize key papers", testutil.WithTaskID("t2")),
	)
	require.NoError(t, svc.Create(context.Background(), ticket))
	return ticket
}
