package repository

const (
	SheetMenu         = "Menu"
	SheetOrders       = "Orders"
	SheetReservations = "Reservations"
)

// Orders columns.
const (
	ColOrderID      = "订单ID"
	ColCustomerName = "客户姓名"
	ColPhone        = "电话号码"
	ColAddress      = "配送地址"
	ColItems        = "菜品清单"
	ColTotalAmount  = "总金额"
	ColOrderDate    = "下单日期"
	ColOrderStatus  = "订单状态"
	ColChannel      = "渠道来源"
	ColNotes        = "备注"
)

// Reservations columns (customer name, phone, channel and notes are shared with Orders).
const (
	ColReservationID     = "预订ID"
	ColReservationDate   = "预订日期"
	ColTimeSlot          = "时段"
	ColPartySize         = "人数"
	ColReservationStatus = "预订状态"
	ColCreatedAt         = "创建时间"
)

// Menu columns.
const (
	ColDishID      = "菜品ID"
	ColDishName    = "名称"
	ColCategory    = "类别"
	ColPrice       = "价格"
	ColAvailable   = "是否可售"
	ColDescription = "描述"
)

var OrderHeader = []string{
	ColOrderID, ColCustomerName, ColPhone, ColAddress, ColItems,
	ColTotalAmount, ColOrderDate, ColOrderStatus, ColChannel, ColNotes,
}

var ReservationHeader = []string{
	ColReservationID, ColCustomerName, ColPhone, ColReservationDate, ColTimeSlot,
	ColPartySize, ColReservationStatus, ColChannel, ColNotes, ColCreatedAt,
}

var MenuHeader = []string{
	ColDishID, ColDishName, ColCategory, ColPrice, ColAvailable, ColDescription,
}

// DefaultSheets maps each worksheet the ledger needs to the header it is created with.
func DefaultSheets() map[string][]string {
	return map[string][]string{
		SheetMenu:         MenuHeader,
		SheetOrders:       OrderHeader,
		SheetReservations: ReservationHeader,
	}
}
