// Package snowflake 生成商家对外暴露的 public_id
package snowflake

import (
	"errors"
	"fmt"
	"sync"

	"github.com/bwmarrin/snowflake"
)

// 10 位节点号拆成 5 位数据中心 + 5 位机器号
const maxPartID = 1<<5 - 1

var (
	node *snowflake.Node
	once sync.Once

	ErrNotInitialized = errors.New("snowflake: generator not initialized")
	ErrInvalidID      = errors.New("snowflake: invalid id")
)

// Init 初始化节点，datacenterID 和 machineID 都是 0~31
func Init(machineID, dataCenterID int64) error {
	var initErr error
	once.Do(func() {
		if machineID < 0 || machineID > maxPartID {
			initErr = fmt.Errorf("snowflake: machine id %d out of range", machineID)
			return
		}
		if dataCenterID < 0 || dataCenterID > maxPartID {
			initErr = fmt.Errorf("snowflake: datacenter id %d out of range", dataCenterID)
			return
		}
		node, initErr = snowflake.NewNode(dataCenterID<<5 | machineID)
	})
	return initErr
}

func NextID() (int64, error) {
	if node == nil {
		return 0, ErrNotInitialized
	}
	return node.Generate().Int64(), nil
}

// Parse 解析十进制字符串形式的 id，非正数视为无效
func Parse(id string) (int64, error) {
	parsed, err := snowflake.ParseString(id)
	if err != nil || parsed.Int64() <= 0 {
		return 0, ErrInvalidID
	}
	return parsed.Int64(), nil
}
