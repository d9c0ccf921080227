package buddy_test

import (
	"fmt"
	"os"

	"github.com/joshuapare/buddykit/buddy"
)

func Example() {
	a, err := buddy.New(make([]byte, 1024), nil)
	if err != nil {
		panic(err)
	}
	if _, err := a.AllocString("hello"); err != nil {
		panic(err)
	}
	if _, _, err := a.Alloc(200); err != nil {
		panic(err)
	}
	if err := a.Report(os.Stdout, nil); err != nil {
		panic(err)
	}
	fmt.Println("used bytes:", a.Stats().UsedBytes)
	// Output:
	// --- memory ---
	// n  | true size    | free   | used
	//  0 |            1 |      0 |      0
	//  1 |            2 |      0 |      0
	//  2 |            4 |      0 |      0
	//  3 |            8 |      0 |      0
	//  4 |           16 |      0 |      0
	//  5 |           32 |      1 |      1
	//  6 |           64 |      1 |      0
	//  7 |          128 |      1 |      0
	//  8 |          256 |      0 |      1
	//  9 |          512 |      1 |      0
	// 10 |         1024 |      0 |      0
	// --- used ---
	//  5: hello
	//  8: <232 bytes>
	// used bytes: 288
}
