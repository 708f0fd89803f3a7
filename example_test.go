package delimscan_test

import (
	"fmt"
	"strings"

	"github.com/moriyoshi/delimscan"
)

func ExampleScanner_Next() {
	s, err := delimscan.NewScanner(strings.NewReader("  alpha beta\n\tgamma  "))
	if err != nil {
		panic(err)
	}
	for {
		token, ok, err := s.Next()
		if err != nil {
			panic(err)
		}
		if !ok {
			break
		}
		fmt.Println(token)
	}
	// Output:
	// alpha
	// beta
	// gamma
}

func ExampleScanner_NextInt() {
	s, err := delimscan.NewScanner(
		strings.NewReader("ff;7f;zz;10"),
		delimscan.WithLiteralDelimiter(";"),
		delimscan.WithRadix(16),
	)
	if err != nil {
		panic(err)
	}
	for {
		ok, err := s.HasNext()
		if err != nil || !ok {
			break
		}
		v, ok, _ := s.NextInt()
		fmt.Println(v, ok)
	}
	// Output:
	// 255 true
	// 127 true
	// 0 false
	// 16 true
}

func ExampleScanner_NextLine() {
	s, err := delimscan.NewScanner(strings.NewReader("3 apples\r\n4 pears\n"))
	if err != nil {
		panic(err)
	}
	for {
		n, ok, _ := s.NextInt()
		if !ok {
			break
		}
		rest, _, _ := s.NextLine()
		fmt.Printf("%d:%q\n", n, rest)
	}
	// Output:
	// 3:" apples"
	// 4:" pears"
}
