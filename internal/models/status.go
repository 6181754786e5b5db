package models

import (
	"slices"
	"strings"
)

// Stored status cells carry the labels staff see in the sheet.
var reservationLabels = map[ReservationStatus]string{
	ReservationPending:   "待确认",
	ReservationConfirmed: "已确认",
	ReservationCancelled: "已取消",
}

var orderLabels = map[OrderStatus]string{
	OrderPending:    "待确认",
	OrderPreparing:  "制作中",
	OrderDelivering: "配送中",
	OrderCompleted:  "已完成",
	OrderCancelled:  "已取消",
}

var reservationTransitions = map[ReservationStatus][]ReservationStatus{
	ReservationPending:   {ReservationConfirmed, ReservationCancelled},
	ReservationConfirmed: {ReservationCancelled},
	ReservationCancelled: {},
}

var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderPending:    {OrderPreparing, OrderCancelled},
	OrderPreparing:  {OrderDelivering, OrderCompleted, OrderCancelled},
	OrderDelivering: {OrderCompleted, OrderCancelled},
	OrderCompleted:  {},
	OrderCancelled:  {},
}

func (s ReservationStatus) Label() string {
	if l, ok := reservationLabels[s]; ok {
		return l
	}
	return string(s)
}

// CanTransitionTo reports whether the transition table allows s -> next.
// Re-applying the current status is always allowed.
func (s ReservationStatus) CanTransitionTo(next ReservationStatus) bool {
	return canTransition(reservationTransitions, s, next)
}

// ParseReservationStatus accepts either the status code ("confirmed") or its sheet label ("已确认").
func ParseReservationStatus(v string) (ReservationStatus, bool) {
	return parseStatus(reservationLabels, v)
}

func (s OrderStatus) Label() string {
	if l, ok := orderLabels[s]; ok {
		return l
	}
	return string(s)
}

func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	return canTransition(orderTransitions, s, next)
}

func ParseOrderStatus(v string) (OrderStatus, bool) {
	return parseStatus(orderLabels, v)
}

func canTransition[S comparable](table map[S][]S, from, to S) bool {
	if from == to {
		_, known := table[from]
		return known
	}
	return slices.Contains(table[from], to)
}

func parseStatus[S ~string](labels map[S]string, v string) (S, bool) {
	v = strings.TrimSpace(v)
	for code, label := range labels {
		if strings.EqualFold(v, string(code)) || v == label {
			return code, true
		}
	}
	return "", false
}
