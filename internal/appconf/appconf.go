// Package appconf names the environments the service runs in. The value
// steers logger selection in main and the storage guard that keeps test runs
// on in-memory databases.
package appconf

// Environment is the deployment environment the process was started for.
type Environment int

const (
	Development Environment = iota
	Test
	Staging
	Production
)

// EnvFlagToEnvironment turns the -env flag (or APP_ENV) value into an
// Environment. Anything unrecognized counts as development rather than
// failing startup.
func EnvFlagToEnvironment(value string) Environment {
	switch value {
	case "test":
		return Test
	case "staging":
		return Staging
	case "production":
		return Production
	default:
		return Development
	}
}

func (e Environment) String() string {
	switch e {
	case Test:
		return "test"
	case Staging:
		return "staging"
	case Production:
		return "production"
	default:
		return "development"
	}
}
