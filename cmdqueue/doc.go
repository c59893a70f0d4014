// Package cmdqueue dispatches built command specs over RabbitMQ and runs
// them on remote workers.
//
// A producer turns a *cmdbuilder.Spec into a Job (its JSON wire form) and
// publishes it; a worker pool consumes jobs, reconstitutes the spec, and
// executes it through a procexec.Executor. Failed jobs are retried with
// backoff and rejected to the dead-letter exchange once retries are
// exhausted.
//
// Producer side:
//
//	client, err := cmdqueue.NewClient(cmdqueue.Config{URL: url})
//	job, err := cmdqueue.NewJob("nightly-backup", spec)
//	err = client.Dispatch(ctx, "", "commands", job)
//
// Worker side:
//
//	err = client.StartWorker(ctx, cmdqueue.WorkerConfig{
//		Queue:   "commands",
//		Workers: 4,
//	}, procexec.New())
package cmdqueue
