package train

import (
	"math/rand"
	"sort"
)

// stratifiedSplit partitions row indices into train and test sets,
// preserving the class balance of y. The shuffle is seeded, so identical
// input always produces the identical split.
func stratifiedSplit(y []float64, testFraction float64, seed int64) (trainIdx, testIdx []int) {
	var pos, neg []int
	for i, v := range y {
		if v == 1 {
			pos = append(pos, i)
		} else {
			neg = append(neg, i)
		}
	}

	rng := rand.New(rand.NewSource(seed))
	for _, class := range [][]int{pos, neg} {
		class := class
		rng.Shuffle(len(class), func(i, j int) {
			class[i], class[j] = class[j], class[i]
		})
		nTest := int(float64(len(class))*testFraction + 0.5)
		if nTest >= len(class) && len(class) > 0 {
			nTest = len(class) - 1
		}
		testIdx = append(testIdx, class[:nTest]...)
		trainIdx = append(trainIdx, class[nTest:]...)
	}

	sort.Ints(trainIdx)
	sort.Ints(testIdx)
	return trainIdx, testIdx
}

// stratifiedFolds assigns every row to one of k folds, class-balanced and
// seed-deterministic. Returned slice maps row index to fold number.
func stratifiedFolds(y []float64, k int, seed int64) []int {
	folds := make([]int, len(y))
	var pos, neg []int
	for i, v := range y {
		if v == 1 {
			pos = append(pos, i)
		} else {
			neg = append(neg, i)
		}
	}

	rng := rand.New(rand.NewSource(seed))
	for _, class := range [][]int{pos, neg} {
		class := class
		rng.Shuffle(len(class), func(i, j int) {
			class[i], class[j] = class[j], class[i]
		})
		for ord, idx := range class {
			folds[idx] = ord % k
		}
	}
	return folds
}
