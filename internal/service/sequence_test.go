package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/Eursukkul/restaurant-ledger/internal/repository"
	"github.com/stretchr/testify/assert"
)

func TestNextID_FirstOrderOfTheDay(t *testing.T) {
	assert.Equal(t, "ORD20240116001", NextID("ORD", "20240116", nil, "订单ID"))
}

func TestNextID_CountsMatchingRows(t *testing.T) {
	rows := make([]repository.Record, 0, 1000)
	for n := 0; n <= 999; n++ {
		want := fmt.Sprintf("RES20240120%03d", n+1)
		assert.Equal(t, want, NextID("RES", "20240120", rows, repository.ColReservationID))
		rows = append(rows, repository.Record{repository.ColReservationID: want})
	}
}

func TestNextID_IgnoresOtherStems(t *testing.T) {
	rows := []repository.Record{
		{"订单ID": "ORD20240115001"},
		{"订单ID": "ORD20240115002"},
		{"订单ID": "ORD20240116001"},
		{"订单ID": "RES20240116001"},
		{"订单ID": ""},
		{"客户姓名": "missing id"},
	}

	assert.Equal(t, "ORD20240116002", NextID("ORD", "20240116", rows, "订单ID"))
}

func TestDateKey(t *testing.T) {
	assert.Equal(t, "20240116", DateKey(time.Date(2024, 1, 16, 23, 59, 0, 0, time.UTC)))
	assert.Equal(t, "20240120", DateKeyFromDate("2024-01-20"))
}
