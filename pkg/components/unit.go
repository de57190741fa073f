package components

// UnitComponent 标记实体为可放置的单位
// Cost 在创建时写入，之后只读
type UnitComponent struct {
	// Cost 从商店购买该单位需要的金币
	Cost uint8
}
