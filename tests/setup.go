package tests

import (
	"os"

	"github.com/soffa-projects/record-api/core"
)

func UseInMemoryDatabase() {
	_ = os.Setenv(core.DatabaseUrl, "file:records?mode=memory&cache=shared")
}
