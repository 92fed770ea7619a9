package utils_test

import (
	"fmt"

	"solr-binder/utils"
)

func ExampleIsInRange() {
	fmt.Println(utils.IsInRange(0, 5, 10))
	fmt.Println(utils.IsInRange(0.0, -0.5, 10.0))
	fmt.Println(utils.IsInRange(0, 10, 10))
	// Output:
	// true
	// false
	// true
}

func ExampleIsIntegral() {
	fmt.Println(utils.IsIntegral(4.0))
	fmt.Println(utils.IsIntegral(4.5))
	fmt.Println(utils.IsIntegral(-3.0))
	// Output:
	// true
	// false
	// true
}
