// Command aggregator runs the small HTTP service that subtracts the exit
// tracker's total from the entry tracker's total and persists the
// current-cars figure to a file. Grounded directly on
// original_source/Master_raspy_counter/parking_lot_master.py's
// `app.run(host="0.0.0.0", port=5000)`.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/avtrejo/corridor-counter/internal/aggregator"
)

var (
	addr      string
	countFile string
)

func parseCliFlags() {
	flag.StringVar(&addr, "addr", ":5000", "Address to listen on")
	flag.StringVar(&countFile, "count-file", "/tmp/corridor-current-cars.txt", "Path the running current-cars value is persisted to")
	flag.Parse()
}

func main() {
	parseCliFlags()

	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error building logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	agg := aggregator.New(countFile, logger)

	engine := gin.New()
	engine.Use(gin.Recovery())
	agg.Routes(engine)

	logger.Info("aggregator listening", zap.String("addr", addr), zap.String("count_file", countFile))
	if err := engine.Run(addr); err != nil {
		logger.Fatal("aggregator server exited", zap.Error(err))
	}
}
