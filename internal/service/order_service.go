package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/taazabazaar/internal/cart"
	"github.com/taazabazaar/internal/constants"
	"github.com/taazabazaar/internal/geo"
	"github.com/taazabazaar/internal/logger"
	"github.com/taazabazaar/internal/models"
	"github.com/taazabazaar/internal/repository"
)

// LocationResolver 配送地址解析
type LocationResolver interface {
	Resolve(ctx context.Context, req geo.Request) string
}

// StatusNotifier 订单状态通知
type StatusNotifier interface {
	Dispatch(ctx context.Context, order *models.Order) error
}

// PlaceOrderInput 下单输入
type PlaceOrderInput struct {
	Coordinates      *geo.Coordinates `json:"coordinates"`
	PermissionDenied bool             `json:"permission_denied"`
}

// PlaceOrderResult 下单结果
type PlaceOrderResult struct {
	Order   *models.Order `json:"order"`
	Message string        `json:"message"`
}

// OrderServiceOptions 订单服务依赖
type OrderServiceOptions struct {
	OrderRepo         repository.OrderRepository
	Carts             *CartService
	Resolver          LocationResolver
	Notifier          StatusNotifier
	StrictTransitions bool
}

// OrderService 订单服务
type OrderService struct {
	orderRepo repository.OrderRepository
	carts     *CartService
	resolver  LocationResolver
	notifier  StatusNotifier
	strict    bool
	now       func() time.Time
}

// NewOrderService 创建订单服务
func NewOrderService(opts OrderServiceOptions) *OrderService {
	resolver := opts.Resolver
	if resolver == nil {
		resolver = geo.NewResolver(nil, 0)
	}
	return &OrderService{
		orderRepo: opts.OrderRepo,
		carts:     opts.Carts,
		resolver:  resolver,
		notifier:  opts.Notifier,
		strict:    opts.StrictTransitions,
		now:       time.Now,
	}
}

// PlaceOrder 用当前购物车下单；失败时购物车保持不变
func (s *OrderService) PlaceOrder(ctx context.Context, session *Session, input PlaceOrderInput) (*PlaceOrderResult, error) {
	if session == nil || strings.TrimSpace(session.ID) == "" {
		return nil, ErrNotLoggedIn
	}
	current, err := s.carts.Get(ctx, session.ID)
	if err != nil {
		return nil, err
	}
	if current.IsEmpty() {
		return nil, ErrCartEmpty
	}

	location := s.resolver.Resolve(ctx, geo.Request{
		Coordinates:      input.Coordinates,
		PermissionDenied: input.PermissionDenied,
		FallbackAddress:  session.Address,
	})
	order := buildOrder(session.ID, location, current, s.now())
	if err := s.orderRepo.Create(order); err != nil {
		logger.Errorw("order_submit_failed", "user_id", session.ID, "error", err)
		return nil, ErrOrderSubmitFailed
	}
	cleared, err := s.carts.ClearIfUnchanged(ctx, session.ID, current)
	if err != nil {
		logger.Warnw("order_cart_clear_failed", "order_id", order.ID, "error", err)
	} else if !cleared {
		logger.Infow("order_cart_kept", "order_id", order.ID, "user_id", session.ID)
	}
	logger.Infow("order_placed",
		"order_id", order.ID,
		"user_id", order.UserID,
		"total", order.TotalCost.String(),
		"items", len(order.Items),
	)
	return &PlaceOrderResult{Order: order, Message: OrderConfirmationMessage(order.TotalCost)}, nil
}

// OrderConfirmationMessage 下单成功提示
func OrderConfirmationMessage(total models.Money) string {
	return fmt.Sprintf("Your order of %s%s has been placed. You will receive updates soon.",
		constants.DefaultCurrencySymbol, total.String())
}

// ListForUser 用户订单列表（最新在前）
func (s *OrderService) ListForUser(userID string, page, pageSize int) ([]models.Order, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrNotLoggedIn
	}
	orders, err := s.orderRepo.List(repository.OrderListFilter{UserID: userID, Page: page, PageSize: pageSize})
	if err != nil {
		return nil, ErrOrderFetchFailed
	}
	return orders, nil
}

// ListAdmin 后台订单列表
func (s *OrderService) ListAdmin(filter repository.OrderListFilter) ([]models.Order, error) {
	if status := strings.TrimSpace(filter.Status); status != "" && !IsValidOrderStatus(status) {
		return nil, ErrOrderStatusInvalid
	}
	orders, err := s.orderRepo.List(filter)
	if err != nil {
		return nil, ErrOrderFetchFailed
	}
	return orders, nil
}

// UpdateStatus 后台更新订单状态，成功后尽力发送通知
func (s *OrderService) UpdateStatus(ctx context.Context, id, status string) (*models.Order, error) {
	status = strings.TrimSpace(status)
	if !IsValidOrderStatus(status) {
		return nil, ErrOrderStatusInvalid
	}
	order, err := s.orderRepo.GetByID(strings.TrimSpace(id))
	if err != nil {
		return nil, ErrOrderFetchFailed
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if order.Status == status {
		return order, nil
	}
	if s.strict && !CanTransitionOrderStatus(order.Status, status) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrOrderTransitionInvalid, order.Status, status)
	}
	if err := s.orderRepo.UpdateStatus(order.ID, status); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrOrderNotFound
		}
		logger.Errorw("order_status_update_failed", "order_id", order.ID, "status", status, "error", err)
		return nil, ErrOrderUpdateFailed
	}
	previous := order.Status
	order.Status = status
	order.UpdatedAt = s.now()
	logger.Infow("order_status_updated", "order_id", order.ID, "from", previous, "to", status)

	if s.notifier != nil {
		if err := s.notifier.Dispatch(ctx, order); err != nil {
			logger.Warnw("order_status_notify_failed", "order_id", order.ID, "status", status, "error", err)
		}
	}
	return order, nil
}

// Subscribe 立即拉取一次并回调，不维持长连接
func (s *OrderService) Subscribe(_ context.Context, filter repository.OrderListFilter, callback func([]models.Order)) (Unsubscribe, error) {
	orders, err := s.ListAdmin(filter)
	if err != nil {
		return func() {}, err
	}
	if callback != nil {
		callback(orders)
	}
	return func() {}, nil
}

// IsValidOrderStatus 是否为已知订单状态
func IsValidOrderStatus(status string) bool {
	if status == constants.OrderStatusCancelled {
		return true
	}
	return orderStatusRank(status) >= 0
}

// CanTransitionOrderStatus 严格模式下的状态流转：只能前进，未终结的订单可随时取消
func CanTransitionOrderStatus(from, to string) bool {
	if from == to {
		return true
	}
	if from == constants.OrderStatusDelivered || from == constants.OrderStatusCancelled {
		return false
	}
	if to == constants.OrderStatusCancelled {
		return true
	}
	fromRank := orderStatusRank(from)
	toRank := orderStatusRank(to)
	return fromRank >= 0 && toRank > fromRank
}

func orderStatusRank(status string) int {
	for i, s := range constants.OrderStatuses() {
		if s == status {
			return i
		}
	}
	return -1
}

func buildOrder(userID, location string, current *cart.Cart, now time.Time) *models.Order {
	items := make([]models.OrderItem, 0, len(current.Items))
	for _, line := range current.Items {
		unit := line.Unit
		if unit == "" {
			unit = constants.DefaultUnit
		}
		items = append(items, models.OrderItem{
			ProductID:   line.ID,
			ProductName: line.Name,
			Quantity:    line.Quantity,
			Price:       line.Price,
			Unit:        unit,
		})
	}
	return &models.Order{
		UserID:    userID,
		Location:  location,
		TotalCost: current.Total,
		Status:    constants.OrderStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
		Items:     items,
	}
}
