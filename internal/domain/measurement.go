package domain

// Measurement 解码后的入站遥测消息
// temperature / humidity / pm25 为必填数值字段；
// account_id 可选，缺省时接入管道回退到最早创建的账户（单租户部署的默认归属）
type Measurement struct {
	Temperature float64
	Humidity    float64
	PM25        float64
	AccountID   *int64 // 消息未携带归属账户时为 nil
}
