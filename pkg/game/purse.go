package game

import (
	"log"
	"strconv"

	"github.com/decker502/autobattler/pkg/components"
	"github.com/decker502/autobattler/pkg/ecs"
)

// Purse 玩家的金币余额及其 UI 文本镜像
//
// 每个场景持有一个实例，通过构造参数注入放置系统，不使用全局变量。
// 当前规则下只有从商店成功放置单位会扣款，余额单调不增。
type Purse struct {
	entityManager *ecs.EntityManager
	balance       uint8
	displayEntity ecs.EntityID // 显示余额的文本实体（非拥有引用）
}

// NewPurse 创建钱包并立即刷新一次显示文本
//
// 参数：
//   - em: 实体管理器（文本实体所在的世界）
//   - balance: 初始余额
//   - displayEntity: 带有 TextComponent 的实体，为 0 表示不显示
func NewPurse(em *ecs.EntityManager, balance uint8, displayEntity ecs.EntityID) *Purse {
	p := &Purse{
		entityManager: em,
		balance:       balance,
		displayEntity: displayEntity,
	}
	p.Refresh()
	return p
}

// Balance 返回当前余额
func (p *Purse) Balance() uint8 {
	return p.balance
}

// CanAfford 检查余额是否足以支付 cost
func (p *Purse) CanAfford(cost uint8) bool {
	return p.balance >= cost
}

// Debit 扣除金币，余额不足时不扣除并返回 false
// 成功扣款后刷新一次显示文本
func (p *Purse) Debit(cost uint8) bool {
	if !p.CanAfford(cost) {
		return false
	}
	p.balance -= cost
	p.Refresh()
	return true
}

// SetBalance 直接设置余额（场景初始化和调试用）
func (p *Purse) SetBalance(balance uint8) {
	p.balance = balance
	p.Refresh()
}

// DisplayEntity 返回显示余额的文本实体
func (p *Purse) DisplayEntity() ecs.EntityID {
	return p.displayEntity
}

// Refresh 将余额写入显示文本
func (p *Purse) Refresh() {
	if p.displayEntity == ecs.InvalidEntity || p.entityManager == nil {
		return
	}
	text, ok := ecs.GetComponent[*components.TextComponent](p.entityManager, p.displayEntity)
	if !ok {
		log.Printf("[Purse] Warning: display entity %d has no TextComponent", p.displayEntity)
		return
	}
	text.Text = strconv.Itoa(int(p.balance))
}
