package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"files-manager/backend/api/handler"
	"files-manager/backend/api/route"
	"files-manager/backend/common"
	"files-manager/backend/library/blobstore"
	"files-manager/backend/library/queue"
	"files-manager/backend/model"
	"files-manager/backend/service"
)

func main() {
	flag.Parse()
	common.LoadConfig()
	common.SysLog("files-manager started")
	if os.Getenv("GIN_MODE") != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := common.InitRedisClient(); err != nil {
		common.FatalLog(err)
	}
	if err := model.InitDB(common.DBPath); err != nil {
		common.FatalLog(err)
	}
	defer func() {
		if err := model.CloseDB(); err != nil {
			common.SysError("close db: " + err.Error())
		}
	}()

	blobs := blobstore.New(common.FolderPath)
	jobs := queue.New(common.RDB)
	sessions := service.NewSessionStore(common.RDB)
	gate := service.NewAuthGate(sessions)
	files := service.NewFileManager(blobs, jobs)

	workerCtx, stopWorkers := context.WithCancel(context.Background())
	defer stopWorkers()
	wg := startThumbnailWorkers(workerCtx, blobs)

	server := gin.Default()
	route.SetRouter(server, handler.New(gate, files), gate)

	srv := &http.Server{
		Addr:    ":" + strconv.Itoa(*common.Port),
		Handler: server,
	}
	go func() {
		common.SysLog("listening on port " + strconv.Itoa(*common.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			common.FatalLog(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	common.SysLog("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		common.SysError("server shutdown: " + err.Error())
	}
	stopWorkers()
	wg.Wait()
	common.SysLog("shutdown complete")
}

// startThumbnailWorkers boots the derivative consumer pool. Jobs stranded on
// the active list by a previous run go back to pending first.
func startThumbnailWorkers(ctx context.Context, blobs *blobstore.Store) *sync.WaitGroup {
	worker := service.NewThumbnailWorker(blobs)
	consumer := queue.NewConsumer(common.RDB, service.DerivativeQueue)
	consumer.OnResult = func(job *queue.Job, err error) {
		if err != nil {
			common.SysError(fmt.Sprintf("derivative job %s (file %d) failed: %s", job.ID, job.FileID, err.Error()))
			return
		}
		common.SysLog(fmt.Sprintf("derivative job %s (file %d) completed", job.ID, job.FileID))
	}
	if err := consumer.RequeueActive(ctx); err != nil {
		common.SysError("requeue active jobs: " + err.Error())
	}

	var wg sync.WaitGroup
	for i := 0; i < common.ThumbnailWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			consumer.Run(ctx, worker.Handle)
		}()
	}
	return &wg
}
