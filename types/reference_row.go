package types

// 参考数据中的一行，建立索引后不再修改
type ReferenceRow struct {
	// 行编号，从1开始按读入顺序递增
	Id uint64

	// 原始字段1（供应商）和字段2（工程名称）
	Field1 string
	Field2 string

	// 归一化后的字段，由BuildIndex填写，比较和召回都使用这两个值
	NormField1 string
	NormField2 string

	// 可选的订单号列，表中不存在该列时为空
	Order string

	// 来源
	Provenance Provenance
}

// 行的来源：文件及其在文件中的数据行序号（不含表头，从0开始）
type Provenance struct {
	SourceFile string
	RowIndex   int
}
