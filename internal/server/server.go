package server

import (
	_ "embed"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"weekly-meal-planner/internal/catalog"
	"weekly-meal-planner/internal/plan"
	"weekly-meal-planner/internal/shopping"
	"weekly-meal-planner/internal/timetable"
)

//go:embed index.html
var indexHTML []byte

// Server owns the single interactive session: the catalog loaded at boot
// and the week plan being edited. The mutex only serializes requests from
// the one browser driving the session.
type Server struct {
	log         *zap.Logger
	cat         *catalog.Catalog
	catErr      string
	catalogPath string

	mu   sync.Mutex
	plan *plan.Plan
}

// New creates a Server. catErr carries the catalog-load diagnostic when
// the catalog could not be read; the server then runs with an empty meal
// list instead of refusing to start.
func New(log *zap.Logger, cat *catalog.Catalog, catErr string, catalogPath string) *Server {
	return &Server{
		log:         log,
		cat:         cat,
		catErr:      catErr,
		catalogPath: catalogPath,
		plan:        plan.New(),
	}
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(s.requestLogger(), gin.Recovery())

	r.GET("/", s.index)
	r.GET("/health", s.health)

	api := r.Group("/api")
	{
		api.GET("/meals", s.listMeals)
		api.GET("/plan", s.getPlan)
		api.PUT("/plan/:day/:slot/main", s.setMain)
		api.DELETE("/plan/:day/:slot/main", s.clearMain)
		api.PUT("/plan/:day/:slot/salad", s.setSalad)
		api.DELETE("/plan/:day/:slot/salad", s.clearSalad)
		api.POST("/plan/reset", s.resetPlan)
		api.POST("/generate", s.generate)
	}

	r.GET("/export/shopping-list", s.exportShoppingList)
	r.GET("/export/timetable", s.exportTimetable)

	return r
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.Debug("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}

func (s *Server) index(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", indexHTML)
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"meals":  s.cat.Len(),
		"sys":    GetSysHealth(s.catalogPath),
	})
}

func (s *Server) listMeals(c *gin.Context) {
	resp := gin.H{"meals": s.cat.Meals()}
	if s.catErr != "" {
		resp["catalog_error"] = s.catErr
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) getPlan(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cells := make(map[plan.Day]map[plan.Slot]plan.Selection)
	s.plan.Each(func(day plan.Day, slot plan.Slot, sel plan.Selection) {
		if cells[day] == nil {
			cells[day] = make(map[plan.Slot]plan.Selection)
		}
		cells[day][slot] = sel
	})
	c.JSON(http.StatusOK, gin.H{"plan": cells})
}

// cellParams validates the :day/:slot route parameters.
func cellParams(c *gin.Context) (plan.Day, plan.Slot, bool) {
	day, ok := plan.ValidDay(c.Param("day"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("unknown day %q", c.Param("day"))})
		return "", "", false
	}
	slot, ok := plan.ValidSlot(c.Param("slot"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("unknown slot %q", c.Param("slot"))})
		return "", "", false
	}
	return day, slot, true
}

type setMainRequest struct {
	Meal   string `json:"meal" binding:"required"`
	People int    `json:"people" binding:"required,min=1"`
}

func (s *Server) setMain(c *gin.Context) {
	day, slot, ok := cellParams(c)
	if !ok {
		return
	}
	var req setMainRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "meal and a positive people count are required"})
		return
	}

	meal, found := s.cat.Find(req.Meal)
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("meal %q not found", req.Meal)})
		return
	}
	if meal.IsSalad {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": fmt.Sprintf("%q is a salad, not a main", req.Meal)})
		return
	}
	if !meal.HasType(slot.SlotTag()) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": fmt.Sprintf("%q cannot fill a %s slot", req.Meal, slot)})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.plan.SetMain(day, slot, req.Meal, req.People); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) clearMain(c *gin.Context) {
	day, slot, ok := cellParams(c)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.plan.ClearMain(day, slot)
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type setSaladRequest struct {
	Meal string `json:"meal" binding:"required"`
}

func (s *Server) setSalad(c *gin.Context) {
	day, slot, ok := cellParams(c)
	if !ok {
		return
	}
	var req setSaladRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "meal is required"})
		return
	}

	meal, found := s.cat.Find(req.Meal)
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("meal %q not found", req.Meal)})
		return
	}
	if !meal.IsSalad {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": fmt.Sprintf("%q is not a salad", req.Meal)})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.plan.SetSalad(day, slot, req.Meal); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) clearSalad(c *gin.Context) {
	day, slot, ok := cellParams(c)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.plan.ClearSalad(day, slot)
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) resetPlan(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.plan.Reset()
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// aggregate runs the engine on the current plan snapshot. It writes the
// empty-plan warning response itself and returns nil in that case.
func (s *Server) aggregate(c *gin.Context) *shopping.Summary {
	s.mu.Lock()
	sum, err := shopping.Aggregate(s.cat, s.plan)
	s.mu.Unlock()
	if err != nil {
		if errors.Is(err, shopping.ErrEmptyPlan) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "your meal plan is empty, select at least one meal"})
			return nil
		}
		s.log.Error("aggregation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "aggregation failed"})
		return nil
	}
	return sum
}

func (s *Server) generate(c *gin.Context) {
	sum := s.aggregate(c)
	if sum == nil {
		return
	}
	c.JSON(http.StatusOK, sum)
}

func (s *Server) exportShoppingList(c *gin.Context) {
	sum := s.aggregate(c)
	if sum == nil {
		return
	}
	filename := fmt.Sprintf("shopping_list_%s.txt", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(sum.Text()))
}

func (s *Server) exportTimetable(c *gin.Context) {
	sum := s.aggregate(c)
	if sum == nil {
		return
	}
	img, err := timetable.Render(sum)
	if err != nil {
		s.log.Error("timetable rendering failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "timetable rendering failed"})
		return
	}
	filename := fmt.Sprintf("meal_plan_%s.png", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "image/png", img)
}
