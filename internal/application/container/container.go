// Package container wires the application together. Everything is
// constructed once at startup and handed to the HTTP layer.
package container

import (
	"github.com/hamatunited-sudo/Hamatunited/internal/application/services"
	"github.com/hamatunited-sudo/Hamatunited/internal/infrastructure/caching"
	"github.com/hamatunited-sudo/Hamatunited/internal/infrastructure/messaging"
	"github.com/hamatunited-sudo/Hamatunited/internal/infrastructure/observability/logging"
	"github.com/hamatunited-sudo/Hamatunited/internal/infrastructure/observability/performance"
	"github.com/hamatunited-sudo/Hamatunited/internal/infrastructure/storage"
	"github.com/hamatunited-sudo/Hamatunited/pkg/config"
)

// Container holds all singleton dependencies.
type Container struct {
	Logger      *logging.ChanneledLogger
	PerfTracker *performance.Tracker

	Storage     *storage.Client
	Snapshots   *caching.SnapshotStore
	Bus         *messaging.Bus
	Broadcaster *messaging.SSEBroadcaster
	Hub         *messaging.Hub

	Content *services.ContentService
	Editor  *services.EditorService
	Auth    *services.AuthService
	Assets  *services.AssetService
}

// New builds the full dependency graph.
func New(logger *logging.ChanneledLogger, perfTracker *performance.Tracker) *Container {
	storageClient := storage.NewClient(
		config.StorageURL,
		config.StorageServiceKey,
		config.StorageAnonKey,
		config.StorageTimeout,
		logger,
	)
	snapshots := caching.NewSnapshotStore(config.StateDir, logger)
	bus := messaging.NewBus(logger)
	broadcaster := messaging.NewSSEBroadcaster(config.SSEClientBufferSize, logger)
	hub := messaging.NewHub(logger)

	// Every publish fans out to in-process subscribers, SSE clients and
	// websocket clients.
	notifier := messaging.MultiNotifier{bus, broadcaster, hub}

	contentSvc := services.NewContentService(storageClient, snapshots, notifier, logger)
	editorSvc := services.NewEditorService(contentSvc, storageClient, snapshots, notifier, logger)
	authSvc := services.NewAuthService(logger)
	assetSvc := services.NewAssetService(storageClient, logger)

	return &Container{
		Logger:      logger,
		PerfTracker: perfTracker,
		Storage:     storageClient,
		Snapshots:   snapshots,
		Bus:         bus,
		Broadcaster: broadcaster,
		Hub:         hub,
		Content:     contentSvc,
		Editor:      editorSvc,
		Auth:        authSvc,
		Assets:      assetSvc,
	}
}
