package tasklane

// Command is a discrete application operation selected on the command line.
// Each implementation carries the options specific to its operation; shared
// configuration lives in Config.
type Command interface {
	// Name returns the sub-command identifier used for routing.
	Name() string
}

// MigrateCommand applies the backend schema. For the PostgreSQL backend this
// runs GORM AutoMigrate; for SurrealDB it is a no-op since tables are created
// on first insert. Safe to run repeatedly.
type MigrateCommand struct{}

func (c *MigrateCommand) Name() string { return "migrate" }

// RunCommand starts the HTTP server.
type RunCommand struct{}

func (c *RunCommand) Name() string { return "run" }
