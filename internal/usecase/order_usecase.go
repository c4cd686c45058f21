package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"app/internal/domain/model"
	"app/internal/infra/mail"
	repo "app/internal/repository"
)

type OrderUsecase struct {
	tx         repo.TransactionManager
	auditRepo  repo.AuditLogRepository
	mailer     mail.Sender
	log        *slog.Logger
	adminEmail string
}

func NewOrderUsecase(
	tx repo.TransactionManager,
	auditRepo repo.AuditLogRepository,
	mailer mail.Sender,
	log *slog.Logger,
	adminEmail string,
) *OrderUsecase {
	return &OrderUsecase{
		tx:         tx,
		auditRepo:  auditRepo,
		mailer:     mailer,
		log:        log,
		adminEmail: adminEmail,
	}
}

type OrderLineInput struct {
	MenuItemID int64
	Quantity   int64
}

type PlaceOrderInput struct {
	Items           []OrderLineInput
	DeliveryAddress string
	Phone           string
	PaymentMethod   string
}

// 注文明細の返却用。Priceは注文時点のスナップショット。
// Name/ImageURLは表示用にメニューを引き直す（消えていれば空のまま）。
type OrderItemResponse struct {
	MenuItemID int64   `json:"menu_item_id"`
	Name       string  `json:"name"`
	Price      float64 `json:"price"`
	ImageURL   string  `json:"image_url"`
	Quantity   int64   `json:"quantity"`
}

type OrderResponse struct {
	ID              int64               `json:"id"`
	UserID          int64               `json:"user_id"`
	Status          model.OrderStatus   `json:"status"`
	TotalPrice      float64             `json:"total_price"`
	DeliveryAddress string              `json:"delivery_address"`
	Phone           string              `json:"phone"`
	PaymentMethod   model.PaymentMethod `json:"payment_method"`
	CreatedAt       time.Time           `json:"created_at"`
	Items           []OrderItemResponse `json:"items"`
}

// Place は注文を作成する。
// 全明細の検証が通るまで何も永続化しない（部分的な注文は作られない）。
// 成功したらカートを消し、管理者へbest-effortでメール通知する。
func (u *OrderUsecase) Place(ctx context.Context, userID int64, in PlaceOrderInput) (OrderResponse, error) {
	if userID <= 0 {
		return OrderResponse{}, NewHTTPError(http.StatusUnauthorized, "Please log in to access this resource")
	}
	if len(in.Items) == 0 {
		return OrderResponse{}, NewHTTPError(http.StatusBadRequest, "Please add at least one item to your order")
	}
	if strings.TrimSpace(in.DeliveryAddress) == "" {
		return OrderResponse{}, NewHTTPError(http.StatusBadRequest, "Please add a delivery address")
	}
	if strings.TrimSpace(in.Phone) == "" {
		return OrderResponse{}, NewHTTPError(http.StatusBadRequest, "Please add a phone number")
	}

	payment := model.PaymentMethod(in.PaymentMethod)
	if in.PaymentMethod == "" {
		payment = model.PaymentMethodCash
	}
	if !payment.Valid() {
		return OrderResponse{}, NewHTTPError(http.StatusBadRequest, "Invalid payment method")
	}

	for _, line := range in.Items {
		if line.MenuItemID <= 0 || line.Quantity < 1 {
			return OrderResponse{}, NewHTTPError(http.StatusBadRequest, "Invalid input")
		}
	}

	var out OrderResponse

	//注文処理はトランザクション
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		//参照されたメニューを1クエリでまとめて解決
		ids := make([]int64, 0, len(in.Items))
		for _, line := range in.Items {
			ids = append(ids, line.MenuItemID)
		}

		menuItems, err := r.MenuItems().FindByIDs(ctx, ids)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "Server Error")
		}

		byID := make(map[int64]model.MenuItem, len(menuItems))
		for _, mi := range menuItems {
			byID[mi.ID] = mi
		}

		//1件でも不明なIDがあれば注文全体を失敗させる
		now := time.Now()
		orderItems := make([]model.OrderItem, 0, len(in.Items))
		var total float64

		for _, line := range in.Items {
			mi, ok := byID[line.MenuItemID]
			if !ok {
				return NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Menu item with ID %d not found", line.MenuItemID))
			}

			//価格スナップショット（以後のメニュー価格変更に影響されない）
			orderItems = append(orderItems, model.OrderItem{
				MenuItemID: line.MenuItemID,
				UnitPrice:  mi.Price,
				Quantity:   line.Quantity,
				CreatedAt:  now,
			})

			total += mi.Price * float64(line.Quantity)
		}

		order := model.Order{
			UserID:          userID,
			Status:          model.OrderStatusPending,
			TotalPrice:      total,
			DeliveryAddress: in.DeliveryAddress,
			Phone:           in.Phone,
			PaymentMethod:   payment,
			CreatedAt:       now,
			UpdatedAt:       now,
		}

		orderID, err := r.Orders().Create(ctx, order)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "Server Error")
		}

		if err := r.OrderItems().CreateBulk(ctx, orderID, orderItems); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "Server Error")
		}

		//注文に変換されたカートは削除（無くてもno-op）
		if err := r.Carts().DeleteByUserID(ctx, userID); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "Server Error")
		}

		order.ID = orderID
		out = u.toOrderResponse(ctx, r.MenuItems(), order, orderItems)
		return nil
	})

	if err != nil {
		return OrderResponse{}, err
	}

	//メール通知はbest-effort。失敗しても注文は成立する。
	body := fmt.Sprintf(
		"New order received!\n\nOrder ID: %d\nTotal: $%.2f\n\nView order details in the admin panel.",
		out.ID, out.TotalPrice,
	)
	if err := u.mailer.Send(u.adminEmail, "New Order Received", body); err != nil {
		u.log.Warn("order notification mail failed", "order_id", out.ID, "error", err)
	}

	return out, nil
}

// ListMine はユーザー自身の注文一覧（新しい順）。
func (u *OrderUsecase) ListMine(ctx context.Context, userID int64) ([]OrderResponse, error) {
	if userID <= 0 {
		return nil, NewHTTPError(http.StatusUnauthorized, "Please log in to access this resource")
	}

	var outs []OrderResponse

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		orders, err := r.Orders().ListByUserID(ctx, userID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "Server Error")
		}

		outs = make([]OrderResponse, 0, len(orders))
		for _, o := range orders {
			items, err := r.OrderItems().ListByOrderID(ctx, o.ID)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "Server Error")
			}
			outs = append(outs, u.toOrderResponse(ctx, r.MenuItems(), o, items))
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return outs, nil
}

// ListAll は全注文一覧（admin用、新しい順）。
func (u *OrderUsecase) ListAll(ctx context.Context) ([]OrderResponse, error) {
	var outs []OrderResponse

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		orders, err := r.Orders().ListAll(ctx)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "Server Error")
		}

		outs = make([]OrderResponse, 0, len(orders))
		for _, o := range orders {
			items, err := r.OrderItems().ListByOrderID(ctx, o.ID)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "Server Error")
			}
			outs = append(outs, u.toOrderResponse(ctx, r.MenuItems(), o, items))
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return outs, nil
}

// Get は注文1件取得。所有者本人かadminだけが見られる（他人は403）。
func (u *OrderUsecase) Get(ctx context.Context, requester *model.User, orderID int64) (OrderResponse, error) {
	if requester == nil {
		return OrderResponse{}, NewHTTPError(http.StatusUnauthorized, "Please log in to access this resource")
	}
	if orderID <= 0 {
		return OrderResponse{}, NewHTTPError(http.StatusBadRequest, "Invalid input")
	}

	var out OrderResponse

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "Order not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "Server Error")
		}

		if requester.Role != model.RoleAdmin && o.UserID != requester.ID {
			return NewHTTPError(http.StatusForbidden, "Not authorized to access this order")
		}

		items, err := r.OrderItems().ListByOrderID(ctx, orderID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "Server Error")
		}

		out = u.toOrderResponse(ctx, r.MenuItems(), o, items)
		return nil
	})

	if err != nil {
		return OrderResponse{}, err
	}
	return out, nil
}

// UpdateStatus は注文ステータスを変更する（admin用）。
// 定義済み4ステータス間の遷移はどの組み合わせも許す。
func (u *OrderUsecase) UpdateStatus(ctx context.Context, actorID int64, orderID int64, newStatus string) (OrderResponse, error) {
	status := model.OrderStatus(newStatus)
	if !status.Valid() {
		return OrderResponse{}, NewHTTPError(http.StatusBadRequest, "Invalid status")
	}

	var out OrderResponse
	var before model.Order

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "Order not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "Server Error")
		}
		before = o

		if err := r.Orders().UpdateStatus(ctx, orderID, status); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return NewHTTPError(http.StatusNotFound, "Order not found")
			}
			return NewHTTPError(http.StatusInternalServerError, "Server Error")
		}

		o.Status = status

		items, err := r.OrderItems().ListByOrderID(ctx, orderID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "Server Error")
		}

		out = u.toOrderResponse(ctx, r.MenuItems(), o, items)
		return nil
	})

	if err != nil {
		return OrderResponse{}, err
	}

	u.writeStatusAudit(ctx, actorID, orderID, before.Status, status)
	return out, nil
}

// 明細とメニュー表示情報をまとめてOrderResponseを作る。
// メニューはsoft delete済みも含めて引く（過去の注文の表示を壊さない）。
func (u *OrderUsecase) toOrderResponse(ctx context.Context, menuRepo repo.MenuItemRepository, o model.Order, items []model.OrderItem) OrderResponse {
	ids := make([]int64, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.MenuItemID)
	}

	byID := make(map[int64]model.MenuItem)
	if menuItems, err := menuRepo.FindByIDsIncludingDeleted(ctx, ids); err == nil {
		for _, mi := range menuItems {
			byID[mi.ID] = mi
		}
	}

	outItems := make([]OrderItemResponse, 0, len(items))
	for _, it := range items {
		resp := OrderItemResponse{
			MenuItemID: it.MenuItemID,
			Price:      it.UnitPrice,
			Quantity:   it.Quantity,
		}
		if mi, ok := byID[it.MenuItemID]; ok {
			resp.Name = mi.Name
			resp.ImageURL = mi.ImageURL
		}
		outItems = append(outItems, resp)
	}

	return OrderResponse{
		ID:              o.ID,
		UserID:          o.UserID,
		Status:          o.Status,
		TotalPrice:      o.TotalPrice,
		DeliveryAddress: o.DeliveryAddress,
		Phone:           o.Phone,
		PaymentMethod:   o.PaymentMethod,
		CreatedAt:       o.CreatedAt,
		Items:           outItems,
	}
}

// ステータス変更の監査ログ。best-effort。
func (u *OrderUsecase) writeStatusAudit(ctx context.Context, actorID int64, orderID int64, before model.OrderStatus, after model.OrderStatus) {
	beforeJSON, _ := json.Marshal(map[string]string{"status": string(before)})
	afterJSON, _ := json.Marshal(map[string]string{"status": string(after)})

	entry := model.AuditLog{
		ActorUserID:  actorID,
		Action:       model.AuditActionUpdateOrderStatus,
		ResourceType: model.AuditResourceOrder,
		ResourceID:   orderID,
		BeforeJSON:   string(beforeJSON),
		AfterJSON:    string(afterJSON),
		CreatedAt:    time.Now(),
	}

	if err := u.auditRepo.Create(ctx, entry); err != nil {
		u.log.Warn("audit log write failed", "action", "UPDATE_ORDER_STATUS", "order_id", orderID, "error", err)
	}
}
