// Package jobs provides scheduled background tasks for the production tracking service.
//
// Jobs are built on github.com/robfig/cron/v3 with the six-field (seconds) parser.
//
// # Available Jobs
//
//  1. SessionSweepJob - closes sessions whose last heartbeat is older than the session TTL,
//     with close reason "expired", so abandoned orders become available again.
//
// # Usage
//
//	jobManager := jobs.NewJobManager(expireHandler, locker, cfg.SweepSchedule, logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Multiple replicas
//
// Each tick first takes a short Redis lock (see adapters/out/redislock). Replicas that
// miss the lock skip the tick. Without Redis a NoopLocker is used.
package jobs
