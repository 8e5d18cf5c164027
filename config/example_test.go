package config_test

import (
	"fmt"

	"github.com/katalvlaran/ivlath/config"
)

func ExampleParse() {
	c, err := config.Parse([]byte("prec: 1e-6\ncontractor: [hc4, newton]\n"))
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(c.Prec, c.Contractor, c.Workers, c.Level())
	// Output: 1e-06 [hc4 newton] 1 INFO
}
