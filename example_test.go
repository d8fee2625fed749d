package tilesort_test

import (
	"fmt"
	"strings"

	"github.com/lanrat/tilesort"
)

func ExampleSort() {
	data := []int{5, 2, 8, 1, 9}
	tilesort.Sort(data, false)
	fmt.Println(data)
	// Output: [1 2 5 8 9]
}

func ExampleSortedKey() {
	abs := func(x int) (int, error) {
		if x < 0 {
			return -x, nil
		}
		return x, nil
	}
	sorted, err := tilesort.SortedKey([]int{-5, 3, -1}, abs, false)
	if err != nil {
		panic(err)
	}
	fmt.Println(sorted)
	// Output: [-1 3 -5]
}

func ExampleNew() {
	type person struct {
		Name string
		Age  int
	}
	people := []person{{"Alice", 30}, {"Bob", 25}, {"Carol", 30}, {"Dan", 25}}

	sorter, err := tilesort.New(tilesort.Order[person, string]{
		Key:     tilesort.KeyOf(func(p person) string { return strings.ToLower(p.Name) }),
		Reverse: true,
	}, &tilesort.Config{TileSize: 2})
	if err != nil {
		panic(err)
	}
	if err := sorter.Sort(people); err != nil {
		panic(err)
	}
	for _, p := range people {
		fmt.Println(p.Name)
	}
	// Output:
	// Dan
	// Carol
	// Bob
	// Alice
}
