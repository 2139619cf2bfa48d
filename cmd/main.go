package main

import (
	"os"

	_ "github.com/lshigami/testportal/docs" // Swagger docs
)

// @title Test Portal Grading API
// @version 1.0
// @description Test authoring, whole-test submission with automatic grading, result reports and grading review requests.
// @contact.name API Support
// @contact.email support@example.com
// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
func main() {
	if err := Execute(); err != nil {
		os.Exit(1)
	}
}
