package parkings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	assert := assert.New(t)

	tests := []struct {
		occupied, capacity int
		expected           Status
	}{
		{95, 100, StatusCritical},
		{90, 100, StatusCritical},
		{120, 100, StatusCritical},
		{89, 100, StatusWarm},
		{75, 100, StatusWarm},
		{70, 100, StatusWarm},
		{69, 100, StatusNominal},
		{10, 100, StatusNominal},
		{0, 100, StatusNominal},
		{0, 0, StatusUnknown},
		{5, 0, StatusUnknown},
		{48, 50, StatusCritical},
		{7, 10, StatusWarm},
	}
	for _, test := range tests {
		assert.Equal(test.expected, Classify(test.occupied, test.capacity),
			"occupied=%d capacity=%d", test.occupied, test.capacity)
	}
}

func TestAvailable(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(2, Available(50, 48))
	assert.Equal(0, Available(50, 50))
	assert.Equal(0, Available(50, 75))
	assert.Equal(0, Available(0, 0))
	assert.Equal(100, Available(100, 0))
}

func TestSplitClassesAreIndependent(t *testing.T) {
	assert := assert.New(t)

	spaces := SplitSpaces{CapacityCar: 10, OccupiedCar: 14, CapacityBike: 20, OccupiedBike: 5}
	classes := spaces.Classes()

	assert.Equal(ClassCar, classes[0].Class)
	assert.Equal(0, classes[0].Available())
	assert.Equal(StatusCritical, classes[0].Status())

	assert.Equal(ClassBike, classes[1].Class)
	assert.Equal(15, classes[1].Available())
	assert.Equal(StatusNominal, classes[1].Status())
}
