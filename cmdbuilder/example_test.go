package cmdbuilder_test

import (
	"fmt"
	"time"

	"github.com/sowinskl/go-proc/cmdbuilder"
)

func ExampleNew() {
	spec, err := cmdbuilder.New("hello world").
		SetPrefix("/bin/echo").
		Build()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	fmt.Println(spec.Line)
	// Output: /bin/echo 'hello world'
}

func ExampleBuilder_SetArguments() {
	b := cmdbuilder.New("first-run").SetPrefix("/usr/bin/git", "--no-pager")

	// Replacing the arguments keeps the prefix.
	b.SetArguments([]string{"log", "--oneline"})

	spec, err := b.Build()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	fmt.Println(spec.Argv)
	// Output: [/usr/bin/git --no-pager log --oneline]
}

func ExampleBuilder_SetTimeout() {
	b := cmdbuilder.New("deploy").SetPrefix("/usr/local/bin/release")
	if err := b.SetTimeout(30 * time.Second); err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	spec, _ := b.Build()
	fmt.Println(spec.Timeout)
	// Output: 30s
}

func ExampleQuote() {
	fmt.Println(cmdbuilder.Quote("plain"))
	fmt.Println(cmdbuilder.Quote("two words"))
	fmt.Println(cmdbuilder.Quote("$(dangerous)"))
	// Output:
	// plain
	// 'two words'
	// '$(dangerous)'
}
