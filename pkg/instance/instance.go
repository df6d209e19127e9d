package instance

import "github.com/angelmondragon/foodcart/pkg/env"

// GetID returns the process instance identifier used in logs, or "local".
func GetID() string {
	return env.First("local", "FOODCART_INSTANCE_ID", "DYNO", "HOSTNAME")
}
