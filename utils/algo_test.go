package utils_test

import (
	"testing"

	"github.com/e1732a364fed/tun_simple/utils"
)

var x = []string{"AA", "BB", "CC", "DD"}

func TestMoveItem(t *testing.T) {
	s := append([]string{}, x...)

	utils.MoveItem(&s, 2, 0)
	t.Log(s)

	if s[0] != "CC" || s[1] != "AA" || s[2] != "BB" || s[3] != "DD" {
		t.FailNow()
	}

	utils.MoveItem(&s, 0, 3)
	if s[3] != "CC" || s[0] != "AA" {
		t.FailNow()
	}

	//越界的情况要保持原样
	before := append([]string{}, s...)
	utils.MoveItem(&s, -1, 2)
	utils.MoveItem(&s, 0, 99)
	for i := range s {
		if s[i] != before[i] {
			t.FailNow()
		}
	}
}

func TestSortByOrder(t *testing.T) {
	s := append([]string{}, x...)

	r, neworder, ei := utils.SortByOrder(s, []int{3, 1, 0, 2})
	t.Log(r, neworder, ei)
	if ei != 0 {
		t.FailNow()
	}
	if r[0] != "DD" || r[1] != "BB" || r[2] != "AA" || r[3] != "CC" {
		t.FailNow()
	}

	//短order要自动补全
	r, neworder, ei = utils.SortByOrder(s, []int{2})
	t.Log(r, neworder, ei)
	if ei != 0 || len(neworder) != 4 || r[0] != "CC" {
		t.FailNow()
	}

	//坏order要报错并保持原样
	_, _, ei = utils.SortByOrder(s, []int{0, 0})
	if ei == 0 {
		t.FailNow()
	}
	_, _, ei = utils.SortByOrder(s, []int{9})
	if ei == 0 {
		t.FailNow()
	}
}

func TestGetMapSortedKeySlice(t *testing.T) {
	m := map[string]int{"tun2": 2, "tun0": 0, "tun1": 1}
	ks := utils.GetMapSortedKeySlice(m)
	t.Log(ks)
	if ks[0] != "tun0" || ks[2] != "tun2" {
		t.FailNow()
	}
}
