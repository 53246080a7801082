// Package aggregator implements the trivial two-counter subtraction
// service described in spec §6: it holds an entry and an exit total under
// mutual exclusion and persists their difference to a file whenever it
// changes. Grounded directly on
// original_source/Master_raspy_counter/parking_lot_master.py, including
// its if new_current_cars != current_cars write guard.
package aggregator

import (
	"net/http"
	"os"
	"strconv"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// updateRequest mirrors the wire body POSTed by cmd/tracker's emitter.
type updateRequest struct {
	Role            string `json:"role"`
	TotalCarsPassed uint64 `json:"total_cars_passed"`
}

// Aggregator holds entry/exit totals and the file path the running
// current-car count is persisted to.
type Aggregator struct {
	mu          sync.Mutex
	entryTotal  uint64
	exitTotal   uint64
	currentCars int64

	countFile string
	logger    *zap.Logger
}

// New creates an Aggregator persisting its running count to countFile.
func New(countFile string, logger *zap.Logger) *Aggregator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Aggregator{countFile: countFile, logger: logger}
}

// Routes registers the aggregator's single endpoint on engine.
func (a *Aggregator) Routes(engine *gin.Engine) {
	engine.POST("/update_passed", a.handleUpdate)
}

func (a *Aggregator) handleUpdate(c *gin.Context) {
	var req updateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "invalid request body"})
		return
	}

	current, err := a.apply(req.Role, req.TotalCarsPassed)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "current_cars": current})
}

// apply replaces the total for role (an absolute value, not an
// increment), recomputes entry_total - exit_total, persists it only if it
// changed, and returns the new current-cars value.
func (a *Aggregator) apply(role string, total uint64) (int64, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	switch role {
	case "entry":
		a.entryTotal = total
	case "exit":
		a.exitTotal = total
	default:
		return 0, errors.Errorf("unknown role %q", role)
	}

	current := int64(a.entryTotal) - int64(a.exitTotal)
	if current != a.currentCars {
		if err := a.writeCountFile(current); err != nil {
			a.logger.Error("failed to persist current car count", zap.Error(err))
		}
		a.currentCars = current
	}
	return current, nil
}

func (a *Aggregator) writeCountFile(current int64) error {
	if a.countFile == "" {
		return nil
	}
	err := os.WriteFile(a.countFile, []byte(strconv.FormatInt(current, 10)), 0o644)
	return errors.Wrap(err, "aggregator: writing count file")
}
