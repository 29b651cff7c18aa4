package attendees

import (
	"context"
	"errors"
	"strings"
	"sync"

	dyn "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// mockDynamo is a small in-memory mock for the DynamoDB operations the stores
// use. It keeps items per table keyed by primary key and interprets only the
// exact expressions the stores emit. Intentionally minimal, not
// production-grade.
type mockDynamo struct {
	mu     sync.Mutex
	tables map[string]map[string]map[string]types.AttributeValue

	putCalls    int
	getCalls    int
	updateCalls int
	queryCalls  int
	scanCalls   int

	failPut    error // when set, PutItem returns this error
	failUpdate error // when set, UpdateItem returns this error
}

func newMockDynamo() *mockDynamo {
	return &mockDynamo{
		tables: map[string]map[string]map[string]types.AttributeValue{},
	}
}

func (m *mockDynamo) table(name string) map[string]map[string]types.AttributeValue {
	if _, ok := m.tables[name]; !ok {
		m.tables[name] = map[string]map[string]types.AttributeValue{}
	}
	return m.tables[name]
}

func itemPK(item map[string]types.AttributeValue) (string, error) {
	for _, k := range []string{"id", "log_id"} {
		if v, ok := item[k]; ok {
			return v.(*types.AttributeValueMemberS).Value, nil
		}
	}
	return "", errors.New("no primary key attribute")
}

func strAttr(item map[string]types.AttributeValue, name string) string {
	v, ok := item[name]
	if !ok {
		return ""
	}
	s, ok := v.(*types.AttributeValueMemberS)
	if !ok {
		return ""
	}
	return s.Value
}

func (m *mockDynamo) PutItem(ctx context.Context, params *dyn.PutItemInput, optFns ...func(*dyn.Options)) (*dyn.PutItemOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.putCalls++
	if m.failPut != nil {
		return nil, m.failPut
	}

	tbl := m.table(*params.TableName)
	pk, err := itemPK(params.Item)
	if err != nil {
		return nil, err
	}

	if params.ConditionExpression != nil && strings.Contains(*params.ConditionExpression, "attribute_not_exists") {
		if _, ok := tbl[pk]; ok {
			return nil, &types.ConditionalCheckFailedException{}
		}
	}
	tbl[pk] = params.Item
	return &dyn.PutItemOutput{}, nil
}

func (m *mockDynamo) GetItem(ctx context.Context, params *dyn.GetItemInput, optFns ...func(*dyn.Options)) (*dyn.GetItemOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.getCalls++

	tbl := m.table(*params.TableName)
	pk, err := itemPK(params.Key)
	if err != nil {
		return nil, err
	}
	item, ok := tbl[pk]
	if !ok {
		return &dyn.GetItemOutput{}, nil
	}
	return &dyn.GetItemOutput{Item: item}, nil
}

func (m *mockDynamo) UpdateItem(ctx context.Context, params *dyn.UpdateItemInput, optFns ...func(*dyn.Options)) (*dyn.UpdateItemOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.updateCalls++
	if m.failUpdate != nil {
		return nil, m.failUpdate
	}

	tbl := m.table(*params.TableName)
	pk, err := itemPK(params.Key)
	if err != nil {
		return nil, err
	}
	item, ok := tbl[pk]

	if params.ConditionExpression != nil {
		cond := *params.ConditionExpression
		if strings.Contains(cond, "attribute_exists(id)") && !ok {
			return nil, &types.ConditionalCheckFailedException{}
		}
		if strings.Contains(cond, "#s <> :checked") {
			checked := params.ExpressionAttributeValues[":checked"].(*types.AttributeValueMemberS).Value
			if strAttr(item, "status") == checked {
				return nil, &types.ConditionalCheckFailedException{}
			}
		}
	}
	if !ok {
		return nil, errors.New("item not found")
	}

	// naive SET application for the expressions the stores emit
	expr := ""
	if params.UpdateExpression != nil {
		expr = *params.UpdateExpression
	}
	vals := params.ExpressionAttributeValues
	if strings.Contains(expr, "#s = :new") {
		item["status"] = vals[":new"]
	}
	if strings.Contains(expr, "#s = :checked") {
		item["status"] = vals[":checked"]
	}
	if strings.Contains(expr, "qr_code_data = :url") {
		item["qr_code_data"] = vals[":url"]
	}
	if strings.Contains(expr, "dispatch_pending = :dp") {
		item["dispatch_pending"] = vals[":dp"]
	}
	if strings.Contains(expr, "updated_at = :ua") {
		item["updated_at"] = vals[":ua"]
	}
	tbl[pk] = item
	return &dyn.UpdateItemOutput{Attributes: item}, nil
}

func (m *mockDynamo) Query(ctx context.Context, params *dyn.QueryInput, optFns ...func(*dyn.Options)) (*dyn.QueryOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queryCalls++

	// only the email GSI lookup is supported
	email := params.ExpressionAttributeValues[":email"].(*types.AttributeValueMemberS).Value
	tbl := m.table(*params.TableName)
	var items []map[string]types.AttributeValue
	for _, item := range tbl {
		if strAttr(item, "email") == email {
			items = append(items, item)
		}
	}
	return &dyn.QueryOutput{Items: items}, nil
}

func (m *mockDynamo) Scan(ctx context.Context, params *dyn.ScanInput, optFns ...func(*dyn.Options)) (*dyn.ScanOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scanCalls++

	tbl := m.table(*params.TableName)
	var status string
	if params.FilterExpression != nil {
		status = params.ExpressionAttributeValues[":status"].(*types.AttributeValueMemberS).Value
	}
	var items []map[string]types.AttributeValue
	for _, item := range tbl {
		if status != "" && strAttr(item, "status") != status {
			continue
		}
		items = append(items, item)
	}
	return &dyn.ScanOutput{Items: items}, nil
}
