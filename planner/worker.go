package planner

import (
	"context"
	"log"
	"os"
	"sync"

	"github.com/google/uuid"

	"github.com/exarkun/farmplan/render"
)

// ScheduleWriter keeps an iCalendar file on disk in sync with the
// catalog: every replan request regenerates the plan and rewrites the
// file.
type ScheduleWriter struct {
	id          uuid.UUID
	service     *PlanService
	broker      Broker
	inbox       Subscriber
	destination string
	ctx         context.Context
	cancel      context.CancelFunc
	wg          sync.WaitGroup
}

func NewScheduleWriter(service *PlanService, broker Broker, destination string) *ScheduleWriter {
	return &ScheduleWriter{
		id:          uuid.New(),
		service:     service,
		broker:      broker,
		inbox:       broker.Subscribe(TopicReplan),
		destination: destination,
	}
}

func (w *ScheduleWriter) GetID() uuid.UUID {
	return w.id
}

func (w *ScheduleWriter) Start(ctx context.Context) {
	w.ctx, w.cancel = context.WithCancel(ctx)
	w.wg.Add(1)
	go w.listen(w.ctx)
}

func (w *ScheduleWriter) Shutdown() {
	w.cancel()
	w.broker.Unsubscribe(TopicReplan, w.inbox)
	w.wg.Wait()
}

func (w *ScheduleWriter) listen(ctx context.Context) {
	defer w.wg.Done()
	for {
		select {
		case req := <-w.inbox:
			w.handleReplan(ctx, req)
		case <-ctx.Done():
			return
		}
	}
}

func (w *ScheduleWriter) handleReplan(ctx context.Context, req ReplanRequest) {
	log.Printf("[INFO] Regenerating schedule (%s): %s", req.ID, req.Reason)

	result, err := w.service.Generate(ctx)
	if err != nil {
		log.Printf("[ERROR] Replan %s failed: %v", req.ID, err)
		return
	}

	ical := render.ScheduleICS(result.Schedule, w.service.Config().Timezone)
	if err := os.WriteFile(w.destination, []byte(ical), 0644); err != nil {
		log.Printf("[ERROR] Replan %s could not write %s: %v", req.ID, w.destination, err)
		return
	}
	log.Printf("[INFO] Wrote %d scheduled tasks to %s", len(result.Schedule), w.destination)
}
