// Package keylock 提供以key為單位的互斥鎖
// 購物車read-modify-write必須以session id為key的critical section保護，
// 避免同session兩個in-flight request (ex: 連點加入購物車) 互相覆蓋
package keylock

import "sync"

type KeyedMutex struct {
	locks sync.Map // key -> *sync.Mutex
}

func New() *KeyedMutex {
	return &KeyedMutex{}
}

// Lock 鎖定指定key，回傳對應的unlock函數
//
// 範例:
//
//	unlock := km.Lock(sessionID)
//	defer unlock()
func (km *KeyedMutex) Lock(key string) func() {
	v, _ := km.locks.LoadOrStore(key, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}
