package result_test

import (
	"fmt"

	"github.com/Philanthropists/checked/pkg/result"
)

func divide(a, b int) result.Result[int] {
	if b == 0 {
		return result.Err[int]("division by zero")
	}
	return result.Ok(a / b)
}

func ExampleOk() {
	r := divide(10, 2)
	if v, err := r.Unwrap(); err == nil {
		fmt.Println(v)
	}
	// Output: 5
}

func ExampleErr() {
	fmt.Println(divide(10, 0))
	// Output: Err(division by zero)
}
