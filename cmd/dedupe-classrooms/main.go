// Command dedupe-classrooms is a one-shot repair tool. It merges classroom
// documents whose names collide under case-insensitive comparison, moves
// their attendance, report and announcement references onto the surviving
// record, and installs the case-insensitive unique name index once the
// dataset verifies clean.
//
// Run it as a deploy-time one-shot task; two instances running at once is
// unsupported. Exit code 0 means the JSON completion report on stdout is
// authoritative; any failure exits non-zero without touching the index.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"time"

	"github.com/classlog/classlog-backend/internal/config"
	"github.com/classlog/classlog-backend/internal/database"
	"github.com/classlog/classlog-backend/internal/dedupe"
	"github.com/classlog/classlog-backend/internal/logger"
	"github.com/classlog/classlog-backend/internal/repository"
)

func main() {
	var dryRun bool
	flag.BoolVar(&dryRun, "dry-run", false, "Discover and score duplicates without writing anything")
	flag.Parse()

	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)

	ctx := context.Background()

	// ─── Connect to MongoDB ────────────────────────────────────────────
	connectCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	client, err := database.NewMongoClient(connectCtx, cfg, log)
	cancel()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to MongoDB")
	}
	defer func() { _ = client.Disconnect(ctx) }()

	db := client.Database(cfg.MongoDatabase)

	// ─── Initialize Repositories ───────────────────────────────────────
	classroomRepo := repository.NewClassroomRepository(db, cfg.OpTimeout)
	attendanceRepo := repository.NewAttendanceRepository(db, cfg.OpTimeout)
	reportRepo := repository.NewReportRepository(db, cfg.OpTimeout)
	announcementRepo := repository.NewAnnouncementRepository(db, cfg.OpTimeout)

	// ─── Run the Engine ────────────────────────────────────────────────
	engine := dedupe.New(classroomRepo, attendanceRepo, reportRepo, announcementRepo, log)

	summary, err := engine.Run(ctx, dryRun)
	if err != nil {
		if errors.Is(err, dedupe.ErrCollisionsRemain) {
			log.Fatal().Err(err).Msg("Post-merge verification failed; unique index NOT installed")
		}
		log.Fatal().Err(err).Msg("Dedupe run aborted")
	}

	// ─── Print Completion Report ───────────────────────────────────────
	out, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to encode completion report")
	}
	fmt.Println(string(out))
}
