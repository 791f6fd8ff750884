package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestString(t *testing.T) {
	assert.Equal(t, "synthcoast "+Version+" ("+GitCommit+")", String("synthcoast"))
}
