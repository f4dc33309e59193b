package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/TMDT-Web/TMDT-Web-Project-sub000/models"
)

const chatContextTTL = 30 * time.Minute

// CreateChatSession opens a session; userID may be empty for visitors.
func CreateChatSession(db *gorm.DB, userID, topic string) (*models.ChatSession, error) {
	session := models.ChatSession{
		ID:     uuid.NewString(),
		UserID: userID,
		Topic:  topic,
	}
	if err := db.Create(&session).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

// GetChatHistory returns a session's stored messages in order.
func GetChatHistory(db *gorm.DB, sessionID string) ([]models.ChatMessage, error) {
	var session models.ChatSession
	if err := db.First(&session, "id = ?", sessionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("chat session not found")
		}
		return nil, err
	}
	var messages []models.ChatMessage
	err := db.Where("session_id = ?", sessionID).Order("created_at ASC").Find(&messages).Error
	return messages, err
}

// SaveChatMessage persists one message.
func SaveChatMessage(db *gorm.DB, sessionID, sender, content string) (*models.ChatMessage, error) {
	msg := models.ChatMessage{
		SessionID: sessionID,
		Sender:    sender,
		Content:   content,
	}
	if err := db.Create(&msg).Error; err != nil {
		return nil, err
	}
	return &msg, nil
}

// BotReply produces the chatbot answer for a visitor message. The last
// matched topic is kept in redis so follow-up questions stay in context.
func BotReply(ctx context.Context, rdb *redis.Client, sessionID, message string) string {
	topic := classify(message)
	key := "chat:ctx:" + sessionID

	if topic == "" && rdb != nil {
		if prev, err := rdb.Get(ctx, key).Result(); err == nil {
			topic = prev
		}
	}
	if topic != "" && rdb != nil {
		rdb.Set(ctx, key, topic, chatContextTTL)
	}

	switch topic {
	case "shipping":
		return "Phí vận chuyển là 30.000đ cho mỗi 30kg. Đơn hàng nội thất lớn sẽ được giao trong 3-7 ngày."
	case "payment":
		return "Chúng tôi hỗ trợ thanh toán qua MoMo, VNPay, chuyển khoản và COD."
	case "voucher":
		return "Bạn có thể đổi điểm thưởng lấy voucher trong mục Ưu đãi. Mỗi voucher dùng được một lần."
	case "order":
		return "Bạn có thể xem trạng thái đơn hàng trong mục Đơn hàng của tôi, hoặc gửi mã đơn để được hỗ trợ."
	case "product":
		return "Bạn cần tư vấn sản phẩm nào? Chúng tôi có đầy đủ sofa, bàn, ghế, giường và tủ."
	default:
		return "Xin chào! Tôi có thể giúp gì về sản phẩm, đơn hàng, thanh toán hay ưu đãi?"
	}
}

// classify maps a free-form message onto a support topic.
func classify(message string) string {
	m := strings.ToLower(message)
	switch {
	case containsAny(m, "ship", "giao hàng", "vận chuyển", "phí giao"):
		return "shipping"
	case containsAny(m, "thanh toán", "momo", "vnpay", "payment", "trả tiền", "cod"):
		return "payment"
	case containsAny(m, "voucher", "mã giảm", "điểm", "ưu đãi", "khuyến mãi"):
		return "voucher"
	case containsAny(m, "đơn hàng", "order", "mã đơn", "trạng thái"):
		return "order"
	case containsAny(m, "sofa", "bàn", "ghế", "giường", "tủ", "sản phẩm", "nội thất"):
		return "product"
	default:
		return ""
	}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
