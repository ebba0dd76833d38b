package utils

import (
	"golang.org/x/exp/constraints"
	"golang.org/x/exp/slices"
)

func GetMapSortedKeySlice[K constraints.Ordered, V any](theMap map[K]V) []K {
	result := make([]K, len(theMap))

	i := 0
	for f := range theMap {
		result[i] = f
		i++
	}
	// 为何 泛型sort比 interface{} sort 快:
	// https://eli.thegreenplace.net/2022/faster-sorting-with-go-generics/

	slices.Sort(result)

	return result
}

// MoveItem 把 (*ss)[from] 挪到 to 的位置上, 其余元素相对顺序不变。会直接改动原slice。
func MoveItem[T any](ss *[]T, from, to int) {
	if from == to {
		return
	}
	s := *ss
	if from < 0 || to < 0 || from >= len(s) || to >= len(s) {
		return
	}

	item := s[from]
	s = slices.Delete(s, from, from+1)
	s = slices.Insert(s, to, item)
	*ss = s
}

// SortByOrder 按 order 给出的索引顺序重排 list, result[i] = list[order[i]].
//
// 若 order 比 list 短, 缺的索引会按原顺序补在后面, neworder 返回补全后的顺序;
// 若 order 有越界或重复的项, ei 返回非0值, 此时 result 就是原样的 list.
func SortByOrder[T any](list []T, order []int) (result []T, neworder []int, ei int) {
	result = list

	if len(order) > len(list) {
		ei = 1
		return
	}

	seen := make(map[int]bool, len(order))
	for _, idx := range order {
		if idx < 0 || idx >= len(list) || seen[idx] {
			ei = 2
			return
		}
		seen[idx] = true
	}

	neworder = slices.Clone(order)
	for i := range list {
		if !seen[i] {
			neworder = append(neworder, i)
		}
	}

	result = make([]T, 0, len(list))
	for _, idx := range neworder {
		result = append(result, list[idx])
	}
	return
}
