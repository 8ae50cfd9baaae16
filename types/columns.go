package types

// 参考表的列名别名，按优先级排列
type ColumnAliases struct {
	Field1 []string `yaml:"field1" validate:"required,min=1,dive,required"`
	Field2 []string `yaml:"field2" validate:"required,min=1,dive,required"`
	Order  []string `yaml:"order"`
}

func DefaultColumnAliases() ColumnAliases {
	return ColumnAliases{
		Field1: []string{"供应单位名称"},
		Field2: []string{"单体工程名称"},
		Order:  []string{"订单号", "订号"},
	}
}

// 列解析结果。Order列可选，缺失时OrderIndex为-1
type ResolvedColumns struct {
	Field1Index int
	Field2Index int
	OrderIndex  int

	Field1Name string
	Field2Name string
	OrderName  string
}

// 返回命中的列名列表，用于校验多文件的一致性
func (c ResolvedColumns) Names() []string {
	names := []string{c.Field1Name, c.Field2Name}
	if c.OrderIndex >= 0 {
		names = append(names, c.OrderName)
	}
	return names
}
