package planner

import (
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/exarkun/farmplan/plan"
	"github.com/exarkun/farmplan/render"
)

type PlanHandler struct {
	service *PlanService
}

func NewPlanHandler(s *PlanService) *PlanHandler {
	return &PlanHandler{
		service: s,
	}
}

func RegisterPlanRoutes(router fiber.Router, handler *PlanHandler) {
	planGroup := router.Group("/plan")
	planGroup.Get("/schedule", handler.GetSchedule)
	planGroup.Get("/schedule.ics", handler.GetScheduleICS)
	planGroup.Get("/orders", handler.GetOrders)
	planGroup.Get("/flats", handler.GetFlats)
}

type scheduledTaskResp struct {
	Kind     plan.TaskKind `json:"kind"`
	When     time.Time     `json:"when"`
	Crop     string        `json:"crop"`
	Variety  string        `json:"variety"`
	Quantity float64       `json:"quantity"`
	Summary  string        `json:"summary"`
}

func (h *PlanHandler) GetSchedule(c fiber.Ctx) error {
	result, err := h.service.Generate(c.Context())
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	tasks := make([]scheduledTaskResp, 0, len(result.Schedule))
	for _, task := range result.Schedule {
		tasks = append(tasks, scheduledTaskResp{
			Kind:     task.Kind,
			When:     task.When,
			Crop:     task.Seed.Crop.Name,
			Variety:  task.Seed.Variety,
			Quantity: task.Quantity,
			Summary:  task.Summarize(),
		})
	}
	return c.JSON(fiber.Map{
		"schedule": tasks,
		"notes":    result.Notes,
	})
}

func (h *PlanHandler) GetScheduleICS(c fiber.Ctx) error {
	result, err := h.service.Generate(c.Context())
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	c.Set(fiber.HeaderContentType, "text/calendar")
	return c.SendString(render.ScheduleICS(result.Schedule, h.service.Config().Timezone))
}

type orderResp struct {
	Crop      string  `json:"crop"`
	Variety   string  `json:"variety"`
	ProductID string  `json:"product_id"`
	Kind      string  `json:"kind"`
	Count     int     `json:"count"`
	RowFeet   float64 `json:"row_feet"`
	Cost      float64 `json:"cost"`
}

func (h *PlanHandler) GetOrders(c fiber.Ctx) error {
	result, err := h.service.Generate(c.Context())
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	var total float64
	orders := make([]orderResp, 0, len(result.Orders))
	for _, order := range result.Orders {
		cost := order.Cost()
		total += cost
		orders = append(orders, orderResp{
			Crop:      order.Seed.Crop.Name,
			Variety:   order.Seed.Variety,
			ProductID: order.Seed.ProductID,
			Kind:      order.Price.Kind,
			Count:     order.Count(),
			RowFeet:   order.RowFeet,
			Cost:      cost,
		})
	}
	return c.JSON(fiber.Map{
		"orders": orders,
		"total":  total,
		"notes":  result.Notes,
	})
}

type flatsResp struct {
	When    time.Time `json:"when"`
	Summary string    `json:"summary"`
	InUse   int       `json:"in_use"`
}

func (h *PlanHandler) GetFlats(c fiber.Ctx) error {
	result, err := h.service.Generate(c.Context())
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	flats := 0
	var usage []flatsResp
	for _, task := range result.Schedule {
		if task.Kind != plan.TaskSeedFlats && task.Kind != plan.TaskTransplant {
			continue
		}
		flats += task.RequiredFlats()
		usage = append(usage, flatsResp{
			When:    task.When,
			Summary: task.Summarize(),
			InUse:   flats,
		})
	}
	return c.JSON(fiber.Map{
		"flats": usage,
	})
}
