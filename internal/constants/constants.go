package constants

// 订单状态常量
const (
	OrderStatusPending        = "pending"
	OrderStatusConfirmed      = "confirmed"
	OrderStatusPreparing      = "preparing"
	OrderStatusOutForDelivery = "out_for_delivery"
	OrderStatusDelivered      = "delivered"
	OrderStatusCancelled      = "cancelled"
)

// 商品分类常量（封闭集合）
const (
	CategoryFruit     = "fruit"
	CategoryVegetable = "vegetable"
	CategorySeasonal  = "seasonal"
	CategoryOthers    = "others"
)

// 库存状态常量
const (
	StockStatusOutOfStock = "out_of_stock"
	StockStatusLowStock   = "low_stock"
	StockStatusInStock    = "in_stock"
	// LowStockThreshold 低库存阈值
	LowStockThreshold = 10
)

// 会话角色常量
const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

// 存储驱动常量
const (
	StoreDriverRemote = "remote"
	StoreDriverMemory = "memory"
	StoreDriverAuto   = "auto"
)

// 键值存储 key 前缀
const (
	StorageKeySession = "session"
	StorageKeyCart    = "cart"
)

// 默认值
const (
	DefaultUnit             = "kg"
	DefaultCurrencySymbol   = "₹"
	LocationNotProvided     = "Address not provided"
	LocationCurrentLocation = "Current Location"
)

// 队列与任务常量
const (
	QueueDefault                  = "default"
	TaskOrderStatusNotification   = "order:status_notification"
	ContextKeySession             = "session"
	ContextKeySessionToken        = "session_token"
	AuthorizationBearerPrefix     = "Bearer "
	SessionTokenHeader            = "X-Session-Token"
	CustomerEmailDomain           = "taazabazaar.com"
	CustomerDefaultName           = "Customer User"
	CustomerDefaultAddress        = "Sample Address, City, State"
	AdminSessionID                = "admin"
	AdminDefaultName              = "Admin User"
	AdminDefaultPhone             = "9876543210"
	AdminDefaultAddress           = "Admin Office, TaazaBazaar HQ"
	OrderIDPrefix                 = "order_"
	SubscriptionEventProducts     = "products"
	SubscriptionEventOrders       = "orders"
	NotificationMessageUnknownFmt = "Your order %s status changed to %s."
)

// ProductCategories 返回全部商品分类（有序）
func ProductCategories() []string {
	return []string{CategoryVegetable, CategoryFruit, CategorySeasonal, CategoryOthers}
}

// OrderStatuses 返回订单状态的正向流转顺序（不含取消）
func OrderStatuses() []string {
	return []string{
		OrderStatusPending,
		OrderStatusConfirmed,
		OrderStatusPreparing,
		OrderStatusOutForDelivery,
		OrderStatusDelivered,
	}
}
